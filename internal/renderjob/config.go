package renderjob

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/alpe/internal/adapters/loader"
	"github.com/okian/alpe/internal/domain/plot"
)

// Format selects what the job writes.
type Format string

// Output formats.
const (
	FormatSVG      Format = "svg"       // standalone SVG document
	FormatPNG      Format = "png"       // go-chart PNG export
	FormatHTML     Format = "html"      // self-contained page with tooltip
	FormatChartSVG Format = "chart-svg" // go-chart SVG export
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG, FormatHTML, FormatChartSVG:
		return f, nil
	case "":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, s)
	}
}

// Config holds configuration for one render job.
type Config struct {
	Source  string        // dataset URL or path
	OutFile string        // output file; empty writes to the provided writer
	Format  Format        // output format
	Timeout time.Duration // bound on the whole job, fetch included

	Plot   []plot.Option   // layout options
	Loader []loader.Option // fetch options
}
