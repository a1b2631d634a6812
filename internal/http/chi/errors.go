package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookshelf-api/apperr"
)

const internalErrorMessage = "Internal server error"

// ErrorRecorder counts error responses; metrics.OTelExporter implements it
type ErrorRecorder interface {
	RecordError(ctx context.Context, kind string)
}

type nopRecorder struct{}

func (nopRecorder) RecordError(context.Context, string) {}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// handlerFunc is an http.HandlerFunc that reports failures instead of writing them
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

/* handle adapts a handlerFunc to http.Handler.
 * Returned errors and panics end up in renderError, the only place that
 * turns an error into a status code.
 */
func (a *api) handle(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			a.renderError(w, r, fmt.Errorf("panic: %v", rec))
		}()
		if err := fn(w, r); err != nil {
			a.renderError(w, r, err)
		}
	})
}

// renderError writes {"error", "status"} for taxonomy errors and a generic 500 for anything else
func (a *api) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := internalErrorMessage
	kind := "internal"
	if e, ok := apperr.As(err); ok {
		status = e.Status()
		message = e.Message
		kind = e.Kind.String()
	}

	log := httplog.LogEntry(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("error_kind", kind).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("error_kind", kind).Int("status", status).Msg("request rejected")
	}
	a.errors.RecordError(r.Context(), kind)

	writeJSON(w, status, errorResponse{Error: message, Status: status})
}

// writeJSON encodes v before the status line goes out, so a value that cannot be encoded becomes a 500
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: internalErrorMessage, Status: status})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
