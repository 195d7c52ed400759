// Package observability provides observability infrastructure for the
// aggregation service, including structured logging and Prometheus metrics.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//
// Example usage:
//
//	import (
//	    "github.com/Sumit-SC/job-search-api/internal/observability/logging"
//	    "github.com/Sumit-SC/job-search-api/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordSourceFetch("remotive", 25, time.Second)
//	}
package observability
