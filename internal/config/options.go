package config

import (
	"github.com/okian/alpe/internal/adapters/loader"
	"github.com/okian/alpe/internal/domain/plot"
)

// PlotOptions translates the layout and presentation keys for plot.NewBuilder.
func (c *Config) PlotOptions() []plot.Option {
	return []plot.Option{
		plot.WithSize(c.Width, c.Height),
		plot.WithPadding(plot.Insets{
			Top:    c.PaddingTop,
			Right:  c.PaddingRight,
			Bottom: c.PaddingBottom,
			Left:   c.PaddingLeft,
		}),
		plot.WithXInsetFactors(c.XInsetLeftFactor, c.XInsetRightFactor),
		plot.WithYearPad(c.YearPad),
		plot.WithRadius(c.Radius),
		plot.WithColors(c.DopedColor, c.CleanColor),
		plot.WithTitles(c.Title, c.Subtitle),
		plot.WithLegend(c.ShowLegend),
		plot.WithTooltip(c.ShowTooltip),
	}
}

// LoaderOptions translates the fetch keys for the dataset loader. A zero
// timeout keeps the loader default.
func (c *Config) LoaderOptions() []loader.Option {
	opts := []loader.Option{loader.WithMaxBodyBytes(c.MaxBodyBytes)}
	if c.FetchTimeoutMS > 0 {
		opts = append(opts, loader.WithTimeout(c.FetchTimeout()))
	}
	return opts
}
