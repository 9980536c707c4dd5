package plot

import (
	"fmt"

	"github.com/okian/alpe/internal/domain/model"
)

// Tooltip is the hover content for one mark.
type Tooltip struct {
	Name        string
	Nationality string
	Year        int
	Time        string // "M:SS"
	Doping      string
}

// NewTooltip extracts the hover content of a record.
func NewTooltip(r model.EnrichedRecord) Tooltip {
	return Tooltip{
		Name:        r.Name,
		Nationality: r.Nationality,
		Year:        r.Year,
		Time:        model.FormatClock(r.TimeOfDay),
		Doping:      r.Doping,
	}
}

// Lines returns the tooltip text, one entry per visual line. The doping
// line is omitted when empty.
func (t Tooltip) Lines() []string {
	lines := []string{
		t.Name + ": " + t.Nationality,
		fmt.Sprintf("Year: %d, Time: %s", t.Year, t.Time),
	}
	if t.Doping != "" {
		lines = append(lines, t.Doping)
	}
	return lines
}
