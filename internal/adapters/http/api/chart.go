package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/alpe/internal/adapters/render/chartexport"
	"github.com/okian/alpe/internal/adapters/render/svgplot"
	"github.com/okian/alpe/pkg/logger"
	"github.com/okian/alpe/pkg/metrics"
)

// PlaceholderHeader is set when /chart.png answers with the fallback image.
const PlaceholderHeader = "X-Chart-Placeholder"

// ChartHandler serves the drawn plot as images.
type ChartHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies, l logger.Logger) *ChartHandler {
	return &ChartHandler{deps: deps, logger: l}
}

// HandleSVG handles GET /chart.svg with the standalone SVG document.
func (h *ChartHandler) HandleSVG(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, "chart.svg") {
		return
	}
	p, err := h.deps.Plot(r.Context())
	if err != nil {
		fail(w, Wrap("chart.svg", err))
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := svgplot.Render(&buf, p); err != nil {
		metrics.RecordRenderError("svg")
		requestLogger(h.logger, r).Error(r.Context(), "svg render failed", logger.Error(err))
		fail(w, NewKind("chart.svg", ErrRender))
		return
	}
	metrics.RecordRender("svg", float64(time.Since(start).Microseconds())/1000)

	writeBody(w, "image/svg+xml", buf.Bytes())
}

// HandleExport handles GET /chart.png. The format query parameter selects
// png (default) or svg from the charting library.
func (h *ChartHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r, "chart.png") {
		return
	}
	format, err := chartexport.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		fail(w, Wrap("chart.png", err))
		return
	}
	p, err := h.deps.Plot(r.Context())
	if err != nil {
		fail(w, Wrap("chart.png", err))
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	err = chartexport.Render(&buf, p, format)
	switch {
	case errors.Is(err, chartexport.ErrPlaceholder):
		metrics.RecordRenderError("chart_" + string(format))
		requestLogger(h.logger, r).Warn(r.Context(), "chart export fell back to placeholder", logger.Error(err))
		w.Header().Set(PlaceholderHeader, "true")
		writeBody(w, chartexport.PNG.ContentType(), buf.Bytes())
		return
	case err != nil:
		metrics.RecordRenderError("chart_" + string(format))
		requestLogger(h.logger, r).Error(r.Context(), "chart export failed", logger.Error(err))
		fail(w, NewKind("chart.png", ErrRender))
		return
	}
	metrics.RecordRender("chart_"+string(format), float64(time.Since(start).Microseconds())/1000)

	writeBody(w, format.ContentType(), buf.Bytes())
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
