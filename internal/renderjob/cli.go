package renderjob

import (
	"io"
)

// ShowHelp prints usage information for the render tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Alpe d'Huez Chart Renderer
==========================

Fetches the cyclist dataset once and writes the doping scatter plot.

Usage:
  go run ./cmd/render [options]

Options:
  -source string
        Dataset URL or file path (default: data_url from config)
  -out string
        Output file (default: stdout)
  -format string
        svg | png | html | chart-svg (default "svg")
  -timeout duration
        Bound on fetch and render (default: fetch_timeout_ms from config)
  -year-pad int
        Years of padding on each side of the x axis (default: year_pad from config)
  -help
        Show this help message

Configuration is read the same way as the server: defaults, then the YAML
file named by ALPE_CONFIG, then ALPE_* environment variables. Flags win.

Examples:
  # Standalone SVG of the published dataset
  go run ./cmd/render -out chart.svg

  # PNG from a local copy without axis padding
  go run ./cmd/render -source ./cyclist-data.json -format png -year-pad 0 -out chart.png

  # Page with hover tooltips
  go run ./cmd/render -format html -out chart.html
`)
}
