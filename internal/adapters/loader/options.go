package loader

import (
	"net/http"
	"time"

	"github.com/okian/alpe/pkg/logger"
)

// Default loader configuration constants.
const (
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 5 << 20
)

// Option applies a configuration option to a source.
type Option func(*settings)

type settings struct {
	timeout  time.Duration
	maxBytes int64
	client   *http.Client
	logger   logger.Logger
}

// WithTimeout bounds the whole request, body included.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBodyBytes caps the accepted payload size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithHTTPClient replaces the HTTP client; its own Timeout wins over
// WithTimeout.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		if c != nil {
			s.client = c
		}
	}
}

// WithLogger sets the logger used by Load.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{timeout: defaultTimeout, maxBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}
