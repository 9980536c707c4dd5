// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Loading layers defaults, an optional YAML file and ALPE_* env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/alpe/internal/domain/plot"
)

// DefaultDataURL is the published cyclist dataset.
const DefaultDataURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/cyclist-data.json"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`
	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataURL is the dataset location: http(s) URL, file:// URL or path.
	DataURL string `koanf:"data_url"`
	// FetchTimeoutMS bounds the single dataset fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`
	// MaxBodyBytes caps the dataset response size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// Chart canvas and layout.
	Width             float64 `koanf:"width"`
	Height            float64 `koanf:"height"`
	PaddingTop        float64 `koanf:"padding_top"`
	PaddingRight      float64 `koanf:"padding_right"`
	PaddingBottom     float64 `koanf:"padding_bottom"`
	PaddingLeft       float64 `koanf:"padding_left"`
	XInsetLeftFactor  float64 `koanf:"x_inset_left_factor"`
	XInsetRightFactor float64 `koanf:"x_inset_right_factor"`
	YearPad           int     `koanf:"year_pad"`
	Radius            float64 `koanf:"radius"`

	// Presentation.
	Title       string `koanf:"title"`
	Subtitle    string `koanf:"subtitle"`
	ShowLegend  bool   `koanf:"show_legend"`
	ShowTooltip bool   `koanf:"show_tooltip"`
	DopedColor  string `koanf:"doped_color"`
	CleanColor  string `koanf:"clean_color"`
}

// New creates a Config populated with defaults. Context is accepted first to
// follow the project convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		DataURL:           DefaultDataURL,
		FetchTimeoutMS:    10_000,
		MaxBodyBytes:      5 << 20,
		Width:             825,
		Height:            500,
		PaddingTop:        50,
		PaddingRight:      25,
		PaddingBottom:     50,
		PaddingLeft:       25,
		XInsetLeftFactor:  3,
		XInsetRightFactor: 7,
		YearPad:           1,
		Radius:            5,
		Title:             plot.DefaultTitle,
		Subtitle:          plot.DefaultSubtitle,
		ShowLegend:        true,
		ShowTooltip:       true,
		DopedColor:        plot.DefaultDopedColor,
		CleanColor:        plot.DefaultCleanColor,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// Validate checks invariants the rest of the service relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataURL == "":
		return fmt.Errorf("%w: data_url must not be empty", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: width and height must be positive", ErrInvalidConfig)
	case c.FetchTimeoutMS < 0:
		return fmt.Errorf("%w: fetch_timeout_ms must not be negative", ErrInvalidConfig)
	case c.YearPad < 0:
		return fmt.Errorf("%w: year_pad must not be negative", ErrInvalidConfig)
	}
	if left, right := c.PaddingLeft*c.XInsetLeftFactor, c.Width-c.PaddingRight*c.XInsetRightFactor; left >= right {
		return fmt.Errorf("%w: x range [%g, %g] is empty", ErrInvalidConfig, left, right)
	}
	return nil
}
