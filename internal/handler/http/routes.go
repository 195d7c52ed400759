package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sumit-SC/job-search-api/internal/handler/http/requestid"
)

// Routes builds the full handler: all endpoints wrapped in the middleware
// chain (request ID, logging, metrics, panic recovery, per-request timeout).
func (a *API) Routes(logger *slog.Logger, requestTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", a.Health)
	mux.HandleFunc("GET /search", a.Search)
	mux.HandleFunc("GET /feeds", a.Feeds)
	mux.HandleFunc("GET /jobs", a.Jobs)
	mux.HandleFunc("GET /jobs/grouped-by-currency", a.JobsGroupedByCurrency)
	mux.HandleFunc("GET /sources", a.Sources)
	mux.HandleFunc("POST /refresh", a.Refresh)
	mux.Handle("GET /metrics", promhttp.Handler())

	return Chain(mux,
		requestid.Middleware,
		Logging(logger),
		Metrics(),
		Recover(logger),
		Timeout(requestTimeout),
	)
}
