package routes

import (
	"net/http"

	"github.com/dukerupert/addressdata/internal/router"
)

// RegisterOpsRoutes registers health and metrics endpoints.
// These routes are unauthenticated and should be firewalled in production.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if deps.MetricsHandler != nil {
		r.Handle(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}
