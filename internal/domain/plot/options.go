// Package plot turns enriched race records into a scatter-plot description:
// scales, marks, axes, legend and tooltip content.
package plot

// Insets holds per-side padding in canvas units.
type Insets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Default layout and presentation constants.
const (
	defaultWidth       = 800 + 25 + 25
	defaultHeight      = 400 + 50 + 50
	defaultLeftFactor  = 3
	defaultRightFactor = 7
	defaultYearPad     = 1
	defaultRadius      = 5
	defaultTickCount   = 10

	// DefaultDopedColor and DefaultCleanColor are category10[0] and [1].
	DefaultDopedColor = "#1f77b4"
	DefaultCleanColor = "#ff7f0e"

	DefaultTitle    = "Doping in Professional Bicycle Racing"
	DefaultSubtitle = "35 Fastest times up Alpe d'Huez"
	yAxisTitle      = "Time (MM:SS)"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithSize sets the canvas size.
func WithSize(width, height float64) Option {
	return func(b *Builder) {
		if width > 0 && height > 0 {
			b.width = width
			b.height = height
		}
	}
}

// WithPadding sets the canvas padding.
func WithPadding(p Insets) Option {
	return func(b *Builder) {
		b.padding = p
	}
}

// WithXInsetFactors scales the left and right padding to position the
// x-axis range.
func WithXInsetFactors(left, right float64) Option {
	return func(b *Builder) {
		if left >= 0 && right >= 0 {
			b.leftFactor = left
			b.rightFactor = right
		}
	}
}

// WithYearPad widens the x domain by pad years on both sides.
func WithYearPad(pad int) Option {
	return func(b *Builder) {
		if pad >= 0 {
			b.yearPad = pad
		}
	}
}

// WithRadius sets the mark radius.
func WithRadius(r float64) Option {
	return func(b *Builder) {
		if r > 0 {
			b.radius = r
		}
	}
}

// WithColors sets the fill for doped and clean marks.
func WithColors(doped, clean string) Option {
	return func(b *Builder) {
		if doped != "" {
			b.dopedColor = doped
		}
		if clean != "" {
			b.cleanColor = clean
		}
	}
}

// WithTitles sets the chart title and subtitle.
func WithTitles(title, subtitle string) Option {
	return func(b *Builder) {
		b.title = title
		b.subtitle = subtitle
	}
}

// WithLegend toggles the legend block.
func WithLegend(enabled bool) Option {
	return func(b *Builder) {
		b.legend = enabled
	}
}

// WithTooltip toggles hover tooltips.
func WithTooltip(enabled bool) Option {
	return func(b *Builder) {
		b.tooltip = enabled
	}
}

// WithTickCount sets the approximate tick count per axis.
func WithTickCount(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.tickCount = n
		}
	}
}
