package http

import (
	"net/http"
	"time"

	"github.com/tabcorehq/directoryd/internal/directory/store"
	"github.com/tabcorehq/directoryd/pkg/dirsdk"
	"github.com/tabcorehq/directoryd/pkg/httpx"
)

// ReadyzHandler is the readiness probe: 200 when the database answers,
// 503 otherwise.
func ReadyzHandler(startTime time.Time, version string, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &dirsdk.HealthChecks{Database: "ok"}
		status := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, dirsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
