// Package service owns the dataset lifecycle: one asynchronous load, the
// stored snapshot and the plot drawn from it. It implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/alpe/internal/adapters/loader"
	"github.com/okian/alpe/internal/adapters/repository"
	"github.com/okian/alpe/internal/domain/model"
	"github.com/okian/alpe/internal/domain/plot"
	"github.com/okian/alpe/internal/domain/scale"
	"github.com/okian/alpe/pkg/logger"
	"github.com/okian/alpe/pkg/metrics"
)

// State is the load lifecycle of the dataset.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Summary aggregates the loaded dataset.
type Summary struct {
	Total          int     `json:"total"`
	Doped          int     `json:"doped"`
	Clean          int     `json:"clean"`
	Malformed      int     `json:"malformed"`
	FirstYear      int     `json:"firstYear"`
	LastYear       int     `json:"lastYear"`
	Fastest        string  `json:"fastest"`
	Slowest        string  `json:"slowest"`
	FastestSeconds float64 `json:"fastestSeconds"`
	SlowestSeconds float64 `json:"slowestSeconds"`
}

// Service implements the API dependencies for the scatter plot.
type Service struct {
	mu sync.RWMutex

	// Components
	source     loader.Source
	location   string
	loaderOpts []loader.Option
	store      repository.Store
	plotOpts   []plot.Option
	builder    *plot.Builder

	// State
	started  bool
	state    State
	loadErr  error
	plot     *plot.Plot
	plotErr  error
	drawOnce sync.Once
	loadedAt time.Time
	loadTook time.Duration
	cancel   context.CancelFunc
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service. The load does not begin until Start.
func New(opts ...Option) *Service {
	s := &Service{
		state: StateIdle,
		done:  make(chan struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewSnapshotStore(repository.WithLogger(s.logger))
	}
	s.builder = plot.NewBuilder(s.plotOpts...)
	return s
}

// Start launches the single asynchronous load. Calling it again is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	if s.source == nil {
		if s.location == "" {
			return ErrNoSource
		}
		src, err := loader.New(s.location, s.loaderOpts...)
		if err != nil {
			return fmt.Errorf("resolve source: %w", err)
		}
		s.source = src
	}

	loadCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.started = true
	s.state = StateLoading

	s.logger.Info(ctx, "starting dataset load", logger.String("location", s.source.Location()))
	go s.run(loadCtx)
	return nil
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	defer s.cancel()

	start := time.Now()
	opts := append([]loader.Option{loader.WithLogger(s.logger)}, s.loaderOpts...)
	records, err := loader.Load(ctx, s.source, opts...)
	if err == nil {
		err = s.store.Put(ctx, records)
	}
	took := time.Since(start)

	if err != nil {
		s.mu.Lock()
		s.state = StateFailed
		s.loadErr = err
		s.loadTook = took
		s.mu.Unlock()

		metrics.RecordErrorByType("load", "critical")
		s.logger.Error(ctx, "dataset unavailable", logger.Error(err))
		return
	}

	s.draw(ctx, records)

	s.mu.Lock()
	s.state = StateReady
	s.loadedAt = time.Now()
	s.loadTook = took
	s.mu.Unlock()

	s.logger.Info(ctx, "service ready",
		logger.Int("records", len(records)),
		logger.Duration("took", took),
	)
}

// draw builds the plot when the dataset turns non-empty. It runs at most
// once per service.
func (s *Service) draw(ctx context.Context, records []model.EnrichedRecord) {
	s.drawOnce.Do(func() {
		if len(records) == 0 {
			s.mu.Lock()
			s.plotErr = plot.ErrNoData
			s.mu.Unlock()
			s.logger.Warn(ctx, "dataset is empty, nothing to draw")
			return
		}

		start := time.Now()
		p, err := s.builder.Build(records)
		if err != nil {
			metrics.RecordRenderError("plot")
			s.logger.Error(ctx, "plot build failed", logger.Error(err))
		} else {
			metrics.RecordRender("plot", float64(time.Since(start).Microseconds())/1000)
			s.logger.Debug(ctx, "plot drawn", logger.Int("marks", len(p.Marks)))
		}

		s.mu.Lock()
		s.plot, s.plotErr = p, err
		s.mu.Unlock()
	})
}

// Wait blocks until the load finished or ctx is done. It returns the load
// error, if any.
func (s *Service) Wait(ctx context.Context) error {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}

	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, s.loadErr)
	}
	return nil
}

// Stop cancels an in-flight load. The loaded dataset, if any, stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.cancel == nil {
		return
	}
	s.cancel()
	s.logger.Info(context.Background(), "service stopped", logger.String("state", string(s.state)))
}

// Status returns the current load state.
func (s *Service) Status() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ready reports nil once the dataset is loaded. Callers hold s.mu.
func (s *Service) ready() error {
	switch s.state {
	case StateReady:
		return nil
	case StateFailed:
		return fmt.Errorf("%w: %w", ErrLoadFailed, s.loadErr)
	default:
		return ErrNotReady
	}
}

// Records returns a copy of the loaded dataset.
func (s *Service) Records(ctx context.Context) ([]model.EnrichedRecord, error) {
	s.mu.RLock()
	err := s.ready()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return s.store.All(ctx)
}

// Plot returns the plot drawn on arrival of the dataset. An empty dataset
// yields plot.ErrNoData. The plot is shared and must not be modified.
func (s *Service) Plot(_ context.Context) (*plot.Plot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.plot, s.plotErr
}

// Summary returns counts and extents of the loaded dataset.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return Summary{}, err
	}
	return summarize(records), nil
}

func summarize(records []model.EnrichedRecord) Summary {
	c := model.CountDoping(records)
	sum := Summary{Total: c.Total(), Doped: c.Doped, Clean: c.Clean}
	if len(records) == 0 {
		return sum
	}

	years := make([]float64, len(records))
	clocks := make([]float64, len(records))
	for i, r := range records {
		years[i] = float64(r.YearDate.Year())
		clocks[i] = model.ClockSeconds(r.TimeOfDay)
		if r.Malformed {
			sum.Malformed++
		}
	}
	lo, hi, _ := scale.Extent(years)
	sum.FirstYear, sum.LastYear = int(lo), int(hi)
	sum.FastestSeconds, sum.SlowestSeconds, _ = scale.Extent(clocks)
	sum.Fastest = model.FormatClock(model.ClockFromSeconds(sum.FastestSeconds))
	sum.Slowest = model.FormatClock(model.ClockFromSeconds(sum.SlowestSeconds))
	return sum
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":   s.started,
		"state":     string(s.state),
		"location":  s.location,
		"plotReady": s.plot != nil,
	}
	if s.source != nil {
		stats["location"] = s.source.Location()
	}

	switch s.state {
	case StateReady:
		stats["records"] = s.store.Count(ctx)
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
		stats["loadTookMs"] = s.loadTook.Milliseconds()
		if s.plot != nil {
			stats["doped"] = s.plot.Counts.Doped
			stats["clean"] = s.plot.Counts.Clean
		}
	case StateFailed:
		stats["error"] = s.loadErr.Error()
		stats["loadTookMs"] = s.loadTook.Milliseconds()
	}

	return stats
}
