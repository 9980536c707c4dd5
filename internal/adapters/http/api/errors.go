package api

import (
	"errors"
	"net/http"

	service "github.com/okian/alpe/internal/app"
	"github.com/okian/alpe/internal/adapters/render/chartexport"
	"github.com/okian/alpe/internal/domain/plot"
)

// Sentinel kinds for API errors.
var (
	ErrMethod   = errors.New("method not allowed")
	ErrNotFound = errors.New("not found")
	ErrRender   = errors.New("render failed")
)

// opError tags an error with the handler operation that produced it.
type opError struct {
	op   string
	kind error
	err  error
}

// NewKind returns an error of the given kind for op.
func NewKind(op string, kind error) error {
	return &opError{op: op, kind: kind}
}

// Wrap tags err with op. It returns nil for a nil err.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

func (e *opError) Error() string {
	if e.err != nil {
		return e.op + ": " + e.err.Error()
	}
	return e.op + ": " + e.kind.Error()
}

func (e *opError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.err != nil {
		errs = append(errs, e.err)
	}
	return errs
}

// statusFor maps an error to the HTTP status and error code of the response.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotReady):
		return http.StatusServiceUnavailable, "not_ready"
	case errors.Is(err, service.ErrLoadFailed):
		return http.StatusBadGateway, "upstream_failed"
	case errors.Is(err, plot.ErrNoData):
		return http.StatusNotFound, "no_data"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrMethod):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, chartexport.ErrFormat):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
