// Package svgplot renders a plot.Plot as SVG markup.
package svgplot

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/alpe/internal/domain/plot"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.New("svgplot").Funcs(template.FuncMap{
	"num":   formatNum,
	"iso":   func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"lines": func(l []string) string { return strings.Join(l, "\n") },
}).ParseFS(templateFS, "templates/*.tmpl"))

// view adds the layout values the template needs on top of the plot.
type view struct {
	*plot.Plot
	Standalone bool
	CenterX    float64
	XRange0    float64
	XRange1    float64
	YRange0    float64
	YRange1    float64
}

func newView(p *plot.Plot, standalone bool) view {
	x0, x1 := p.X.Range()
	y0, y1 := p.Y.Range()
	return view{
		Plot:       p,
		Standalone: standalone,
		CenterX:    p.Width / 2,
		XRange0:    x0,
		XRange1:    x1,
		YRange0:    y0,
		YRange1:    y1,
	}
}

// Render writes a standalone SVG document for p, including the title,
// subtitle and native hover titles on each mark.
func Render(w io.Writer, p *plot.Plot) error {
	if p == nil {
		return plot.ErrNoData
	}
	if err := tmpl.ExecuteTemplate(w, "plot", newView(p, true)); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// Fragment returns inline SVG for embedding in an HTML page. Titles and
// tooltips are left to the page.
func Fragment(p *plot.Plot) (template.HTML, error) {
	if p == nil {
		return "", plot.ErrNoData
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "plot", newView(p, false)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	//nolint:gosec // produced by html/template, already escaped
	return template.HTML(buf.String()), nil
}

// formatNum prints coordinates with at most two decimals.
func formatNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
