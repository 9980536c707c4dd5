// Package loader retrieves the race-result dataset and enriches it.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/alpe/internal/domain/model"
	"github.com/okian/alpe/pkg/logger"
	"github.com/okian/alpe/pkg/metrics"
)

// Source yields the raw records of the dataset.
type Source interface {
	Fetch(ctx context.Context) ([]model.RawRecord, error)
	// Location describes where records come from, for logs.
	Location() string
}

// HTTPSource fetches the dataset with a single GET. It never retries.
type HTTPSource struct {
	url      string
	client   *http.Client
	maxBytes int64
}

// NewHTTPSource creates a source for an http(s) URL.
func NewHTTPSource(rawURL string, opts ...Option) *HTTPSource {
	s := newSettings(opts)
	return &HTTPSource{url: rawURL, client: s.client, maxBytes: s.maxBytes}
}

// Location returns the dataset URL.
func (h *HTTPSource) Location() string { return h.url }

// Fetch performs the request and decodes the JSON array.
func (h *HTTPSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, h.url, resp.StatusCode)
	}
	return decode(resp.Body, h.maxBytes)
}

// FileSource reads the dataset from a local JSON file.
type FileSource struct {
	path     string
	maxBytes int64
}

// NewFileSource creates a source for a local path.
func NewFileSource(path string, opts ...Option) *FileSource {
	s := newSettings(opts)
	return &FileSource{path: path, maxBytes: s.maxBytes}
}

// Location returns the file path.
func (f *FileSource) Location() string { return f.path }

// Fetch reads and decodes the file.
func (f *FileSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = fh.Close() }()
	return decode(fh, f.maxBytes)
}

// New picks a Source for location: http(s) URLs use HTTPSource, file://
// URLs and bare paths use FileSource.
func New(location string, opts ...Option) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty", ErrLocation)
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocation, err)
	}
	switch u.Scheme {
	case "http", "https":
		return NewHTTPSource(location, opts...), nil
	case "file":
		return NewFileSource(u.Path, opts...), nil
	case "":
		return NewFileSource(location, opts...), nil
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrLocation, u.Scheme)
	}
}

func decode(r io.Reader, maxBytes int64) ([]model.RawRecord, error) {
	// One extra byte distinguishes "exactly at the limit" from "over it".
	body, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}
	var records []model.RawRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return records, nil
}

// Load fetches src once and enriches the result. Malformed race times are
// kept and reported through a single warning.
func Load(ctx context.Context, src Source, opts ...Option) ([]model.EnrichedRecord, error) {
	s := newSettings(opts)
	log := s.logger
	if log == nil {
		log = logger.Get()
	}
	log = log.With(logger.String("load_id", uuid.NewString()), logger.String("location", src.Location()))

	start := time.Now()
	raws, err := src.Fetch(ctx)
	took := time.Since(start)
	latencyMs := float64(took.Microseconds()) / 1000
	if err != nil {
		metrics.RecordFetch(metrics.OutcomeFailure, latencyMs)
		log.Error(ctx, "dataset fetch failed", logger.Duration("took", took), logger.Error(err))
		return nil, err
	}
	metrics.RecordFetch(metrics.OutcomeSuccess, latencyMs)

	records := model.EnrichAll(raws)
	malformed := 0
	for _, r := range records {
		if r.Malformed {
			malformed++
		}
	}
	if malformed > 0 {
		metrics.RecordMalformed(malformed)
		log.Warn(ctx, "dataset contains malformed race times", logger.Int("malformed", malformed))
	}

	log.Info(ctx, "dataset fetched",
		logger.Int("records", len(records)),
		logger.Duration("took", took),
	)
	return records, nil
}
