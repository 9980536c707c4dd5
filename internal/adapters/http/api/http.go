// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/alpe/internal/app"
	"github.com/okian/alpe/internal/domain/model"
	"github.com/okian/alpe/internal/domain/plot"
	"github.com/okian/alpe/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Status reports the dataset load state.
	Status() service.State

	// Read operations expose the loaded dataset and the drawn plot.
	Records(ctx context.Context) ([]model.EnrichedRecord, error)
	Plot(ctx context.Context) (*plot.Plot, error)
	Summary(ctx context.Context) (Summary, error)
}

// Summary mirrors the aggregate returned by the service.
type Summary = service.Summary

// Server wires HTTP routes for the chart API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	pageHandler   *PageHandler
	chartHandler  *ChartHandler
	dataHandler   *DataHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := newSettings(opts)
	return &Server{
		healthHandler: NewHealthHandler(deps),
		statsHandler:  NewStatsHandler(statsProvider),
		pageHandler:   NewPageHandler(deps, cfg.title, cfg.subtitle, cfg.logger),
		chartHandler:  NewChartHandler(deps, cfg.logger),
		dataHandler:   NewDataHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/records", wrap(s.dataHandler.HandleRecords, "records"))
	mux.HandleFunc("/api/summary", wrap(s.dataHandler.HandleSummary, "summary"))
	mux.HandleFunc("/chart.svg", wrap(s.chartHandler.HandleSVG, "chart_svg"))
	mux.HandleFunc("/chart.png", wrap(s.chartHandler.HandleExport, "chart_export"))
	mux.HandleFunc("/", wrap(s.pageHandler.HandlePage, "page"))
}

// wrap applies the request-id and metrics middleware to a handler.
func wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes the JSON error response matching err.
func fail(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "2")
	}
	writeError(w, status, code, err)
}

// allowGet rejects anything but GET and HEAD with 405.
func allowGet(w http.ResponseWriter, r *http.Request, op string) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	fail(w, NewKind(op, ErrMethod))
	return false
}

// requestLogger returns the logger tagged with the request id.
func requestLogger(base logger.Logger, r *http.Request) logger.Logger {
	return base.With(logger.String("request_id", RequestID(r.Context())), logger.String("path", r.URL.Path))
}
