package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	service "github.com/okian/alpe/internal/app"
	"github.com/okian/alpe/internal/adapters/render/svgplot"
	"github.com/okian/alpe/internal/domain/plot"
	"github.com/okian/alpe/pkg/logger"
)

//go:embed static/*.tmpl
var pageFS embed.FS

var pageTemplate = template.Must(template.ParseFS(pageFS, "static/page.html.tmpl"))

// Page states rendered by the template.
const (
	pageLoading = "loading"
	pageReady   = "ready"
	pageEmpty   = "empty"
	pageError   = "error"
)

type pageData struct {
	Title    string
	Subtitle string
	State    string
	Message  string
	Refresh  bool
	Chart    template.HTML
}

// PageHandler serves the HTML page around the inline SVG.
type PageHandler struct {
	deps     Dependencies
	title    string
	subtitle string
	logger   logger.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(deps Dependencies, title, subtitle string, l logger.Logger) *PageHandler {
	return &PageHandler{
		deps:     deps,
		title:    title,
		subtitle: subtitle,
		logger:   l,
	}
}

// HandlePage handles GET /. While the dataset loads the page refreshes
// itself; afterwards it shows the plot, an empty notice or the failure.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		fail(w, NewKind("page", ErrNotFound))
		return
	}
	if !allowGet(w, r, "page") {
		return
	}

	data := pageData{Title: h.title, Subtitle: h.subtitle}
	status := http.StatusOK

	p, err := h.deps.Plot(r.Context())
	switch {
	case err == nil:
		frag, ferr := svgplot.Fragment(p)
		if ferr != nil {
			requestLogger(h.logger, r).Error(r.Context(), "inline svg render failed", logger.Error(ferr))
			data.State, data.Message = pageError, "The chart could not be drawn."
			status = http.StatusInternalServerError
			break
		}
		data.State, data.Chart = pageReady, frag
		data.Title, data.Subtitle = p.Title, p.Subtitle
	case errors.Is(err, service.ErrNotReady):
		data.State, data.Message, data.Refresh = pageLoading, "Loading race data...", true
		status = http.StatusServiceUnavailable
		w.Header().Set("Retry-After", "2")
	case errors.Is(err, plot.ErrNoData):
		data.State, data.Message = pageEmpty, "No data to plot."
	default:
		requestLogger(h.logger, r).Warn(r.Context(), "page served without dataset", logger.Error(err))
		data.State, data.Message = pageError, "Could not load race data: "+err.Error()
		status, _ = statusFor(err)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		requestLogger(h.logger, r).Error(r.Context(), "page template failed", logger.Error(err))
		fail(w, NewKind("page", ErrRender))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
