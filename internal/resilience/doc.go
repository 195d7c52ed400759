// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic to keep the
// aggregation pipeline healthy when individual job sources misbehave.
//
// The package supports:
//   - Circuit breakers for external fetches (feeds, job APIs, board scraping)
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchFeed()
//	})
//
//	retryConfig := retry.DefaultConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
package resilience
