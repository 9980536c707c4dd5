package plot

import (
	"math"
	"strconv"
	"time"

	"github.com/okian/alpe/internal/domain/model"
	"github.com/okian/alpe/internal/domain/scale"
)

// Tick is one labelled axis position.
type Tick struct {
	Value float64 // domain value
	Pos   float64 // range position
	Label string
}

// Axis is a positioned set of ticks.
type Axis struct {
	ID         string
	TranslateX float64
	TranslateY float64
	Ticks      []Tick
}

// AxisTitle is a rotated label placed beside an axis.
type AxisTitle struct {
	ID     string
	X, Y   float64
	Rotate float64 // degrees, around (PivotX, PivotY)
	PivotX float64
	PivotY float64
	Text   string
}

// Mark is one circle per record.
type Mark struct {
	CX, CY  float64
	R       float64
	Fill    string
	Doped   bool
	XValue  int       // year
	YValue  time.Time // time of day
	Tooltip Tooltip
}

// Plot is the complete description of a drawn chart.
type Plot struct {
	Width    float64
	Height   float64
	Title    string
	Subtitle string

	X scale.Linear // years
	Y scale.Linear // seconds since midnight

	XAxis      Axis
	YAxis      Axis
	YAxisTitle AxisTitle

	Marks    []Mark
	Legend   *Legend // nil when disabled
	Tooltips bool
	Counts   model.Counts
}

// Builder computes plots from records. It holds layout configuration only
// and can be reused.
type Builder struct {
	width, height           float64
	padding                 Insets
	leftFactor, rightFactor float64
	yearPad                 int
	radius                  float64
	dopedColor, cleanColor  string
	title, subtitle         string
	legend, tooltip         bool
	tickCount               int
}

// NewBuilder creates a Builder with the default layout.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		width:       defaultWidth,
		height:      defaultHeight,
		padding:     Insets{Top: 50, Right: 25, Bottom: 50, Left: 25},
		leftFactor:  defaultLeftFactor,
		rightFactor: defaultRightFactor,
		yearPad:     defaultYearPad,
		radius:      defaultRadius,
		dopedColor:  DefaultDopedColor,
		cleanColor:  DefaultCleanColor,
		title:       DefaultTitle,
		subtitle:    DefaultSubtitle,
		legend:      true,
		tooltip:     true,
		tickCount:   defaultTickCount,
	}

	// Apply all options
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// XRange returns the pixel interval used by the x scale.
func (b *Builder) XRange() (float64, float64) {
	return b.padding.Left * b.leftFactor, b.width - b.padding.Right*b.rightFactor
}

// YRange returns the pixel interval used by the y scale; it runs bottom-up so
// slower times sit higher.
func (b *Builder) YRange() (float64, float64) {
	return b.height - b.padding.Bottom, b.padding.Top
}

// Fill returns the mark color for a doping status.
func (b *Builder) Fill(doped bool) string {
	if doped {
		return b.dopedColor
	}
	return b.cleanColor
}

// Build computes the plot for records. It returns ErrNoData when records is
// empty; no scales or axes are computed in that case.
func (b *Builder) Build(records []model.EnrichedRecord) (*Plot, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	years := make([]float64, len(records))
	clocks := make([]float64, len(records))
	for i, r := range records {
		years[i] = float64(r.YearDate.Year())
		clocks[i] = model.ClockSeconds(r.TimeOfDay)
	}
	minYear, maxYear, _ := scale.Extent(years)
	minClock, maxClock, _ := scale.Extent(clocks)

	pad := float64(b.yearPad)
	xr0, xr1 := b.XRange()
	yr0, yr1 := b.YRange()
	xs := scale.NewLinear(minYear-pad, maxYear+pad, xr0, xr1)
	ys := scale.NewLinear(minClock, maxClock, yr0, yr1)

	p := &Plot{
		Width:    b.width,
		Height:   b.height,
		Title:    b.title,
		Subtitle: b.subtitle,
		X:        xs,
		Y:        ys,
		XAxis: Axis{
			ID:         "x-axis",
			TranslateY: b.height - b.padding.Bottom,
			Ticks:      yearTicks(xs, b.tickCount),
		},
		YAxis: Axis{
			ID:         "y-axis",
			TranslateX: xr0,
			Ticks:      clockTicks(ys, b.tickCount),
		},
		YAxisTitle: AxisTitle{
			ID:     "y-axis-title",
			X:      b.width / 2,
			Y:      -(b.leftFactor + b.leftFactor) * b.padding.Left,
			Rotate: -90,
			PivotX: b.width / 2,
			PivotY: b.height / 2,
			Text:   yAxisTitle,
		},
		Tooltips: b.tooltip,
		Counts:   model.CountDoping(records),
	}

	p.Marks = make([]Mark, len(records))
	for i, r := range records {
		p.Marks[i] = Mark{
			CX:      xs.Map(years[i]),
			CY:      ys.Map(clocks[i]),
			R:       b.radius,
			Fill:    b.Fill(r.Doped()),
			Doped:   r.Doped(),
			XValue:  r.YearDate.Year(),
			YValue:  r.TimeOfDay,
			Tooltip: NewTooltip(r),
		}
	}

	if b.legend {
		p.Legend = b.buildLegend(p.Counts)
	}
	return p, nil
}

// yearTicks keeps whole years only; narrow domains would otherwise repeat
// labels.
func yearTicks(s scale.Linear, count int) []Tick {
	values := s.Ticks(count)
	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		if v != math.Trunc(v) {
			continue
		}
		ticks = append(ticks, Tick{Value: v, Pos: s.Map(v), Label: strconv.Itoa(int(v))})
	}
	return ticks
}

func clockTicks(s scale.Linear, count int) []Tick {
	values := s.Ticks(count)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Pos: s.Map(v), Label: FormatMinuteSecond(v)}
	}
	return ticks
}

// FormatMinuteSecond renders seconds since midnight as zero-padded "MM:SS".
func FormatMinuteSecond(sec float64) string {
	return model.ClockFromSeconds(sec).Format("04:05")
}
