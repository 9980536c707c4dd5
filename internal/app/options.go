package service

import (
	"github.com/okian/alpe/internal/adapters/loader"
	"github.com/okian/alpe/internal/adapters/repository"
	"github.com/okian/alpe/internal/domain/plot"
	"github.com/okian/alpe/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets the dataset source directly. It takes precedence over
// WithLocation.
func WithSource(src loader.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithLocation sets the dataset URL or path resolved on Start.
func WithLocation(location string) Option {
	return func(s *Service) {
		s.location = location
	}
}

// WithLoaderOptions passes options to the loader (timeout, body cap, client).
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(s *Service) {
		s.loaderOpts = append(s.loaderOpts, opts...)
	}
}

// WithStore replaces the default in-memory snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithPlotOptions configures the plot layout.
func WithPlotOptions(opts ...plot.Option) Option {
	return func(s *Service) {
		s.plotOpts = append(s.plotOpts, opts...)
	}
}
