package renderjob

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/okian/alpe/internal/adapters/http/site"
	"github.com/okian/alpe/internal/adapters/render/svgplot"
	"github.com/okian/alpe/internal/domain/plot"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

type pageData struct {
	Title    string
	Subtitle string
	Chart    template.HTML
	Style    template.CSS
	Script   template.JS
}

// writeHTML writes a single file page: the inline SVG plus the page assets
// the server would otherwise serve under /assets/.
func writeHTML(w io.Writer, p *plot.Plot) error {
	frag, err := svgplot.Fragment(p)
	if err != nil {
		return err
	}
	style, err := readAsset(site.FS(), "style.css")
	if err != nil {
		return err
	}
	script, err := readAsset(site.FS(), "tooltip.js")
	if err != nil {
		return err
	}

	return pageTemplate.Execute(w, pageData{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Chart:    frag,
		Style:    template.CSS(style), //nolint:gosec // embedded asset
		Script:   template.JS(script), //nolint:gosec // embedded asset
	})
}

func readAsset(fs http.FileSystem, name string) (string, error) {
	f, err := fs.Open(name)
	if err != nil {
		return "", fmt.Errorf("open asset %s: %w", name, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read asset %s: %w", name, err)
	}
	return string(b), nil
}
