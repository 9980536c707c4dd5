package plot

import (
	"fmt"

	"github.com/okian/alpe/internal/domain/model"
)

// LegendEntry is one swatch with its label.
type LegendEntry struct {
	ID     string
	Y      float64 // swatch offset inside the legend
	Size   float64
	Fill   string
	Label  string
	LabelX float64
	LabelY float64
}

// Legend is the translated block of doping swatches.
type Legend struct {
	X, Y    float64
	Entries []LegendEntry
}

// DopedLabel and CleanLabel return the legend texts for counts.
func DopedLabel(c model.Counts) string { return fmt.Sprintf("Yes doping [%d]", c.Doped) }
func CleanLabel(c model.Counts) string { return fmt.Sprintf("No doping [%d]", c.Clean) }

func (b *Builder) buildLegend(c model.Counts) *Legend {
	size := b.padding.Right
	step := b.padding.Bottom
	return &Legend{
		X: b.width - (b.rightFactor-1)*b.padding.Right,
		Y: b.height / 2,
		Entries: []LegendEntry{
			{
				ID:     "legend-dope",
				Y:      0,
				Size:   size,
				Fill:   b.dopedColor,
				Label:  DopedLabel(c),
				LabelX: size * 1.5,
				LabelY: step / 3,
			},
			{
				ID:     "legend-clean",
				Y:      step,
				Size:   size,
				Fill:   b.cleanColor,
				Label:  CleanLabel(c),
				LabelX: size * 1.5,
				LabelY: step + step/3,
			},
		},
	}
}
