package api

import (
	"github.com/okian/alpe/internal/domain/plot"
	"github.com/okian/alpe/pkg/logger"
)

// Option configures the Server.
type Option func(*settings)

type settings struct {
	title    string
	subtitle string
	logger   logger.Logger
}

// WithTitles sets the page heading shown before the plot is ready.
func WithTitles(title, subtitle string) Option {
	return func(s *settings) {
		if title != "" {
			s.title = title
		}
		if subtitle != "" {
			s.subtitle = subtitle
		}
	}
}

// WithLogger sets the logger used by the handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		title:    plot.DefaultTitle,
		subtitle: plot.DefaultSubtitle,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	return s
}
