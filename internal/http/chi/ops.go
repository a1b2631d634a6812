package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/marcelsud/bookshelf-api/metrics"
)

type healthResponse struct {
	Status    string           `json:"status"`
	Records   map[string]int64 `json:"records,omitempty"`
	Timestamp *time.Time       `json:"timestamp,omitempty"`
}

/* OpsHandlers serves health and metrics on the ops listener, without the API key.
 * With a collector, /health also counts the records of every collection and
 * answers 503 when the storage cannot be read.
 */
func OpsHandlers(collector metrics.Collector, metricsHandler http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if collector == nil {
			writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
			return
		}
		m, err := collector.Collect(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy"})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "healthy",
			Records:   m.Records,
			Timestamp: &m.Timestamp,
		})
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}
	return r
}
