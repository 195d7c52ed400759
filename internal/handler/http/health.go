package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Sumit-SC/job-search-api/internal/handler/http/respond"
)

// HealthResponse is the JSON body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// CheckStatus reports one health check item.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health handles GET /health: liveness plus listing-store reachability.
// Returns 503 when the store is unreachable.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   a.Version,
		Checks:    map[string]CheckStatus{},
	}

	code := http.StatusOK
	if a.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if _, err := a.Store.Load(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Checks["store"] = CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
			code = http.StatusServiceUnavailable
		} else {
			resp.Checks["store"] = CheckStatus{Status: "healthy"}
		}
	}

	respond.JSON(w, code, resp)
}
