package metrics

import "time"

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordSourceFetch records one adapter fetch outcome.
func RecordSourceFetch(source string, records int, duration time.Duration) {
	SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	SourceRecordsTotal.WithLabelValues(source).Add(float64(records))
}

// RecordSourceError records an adapter failure.
func RecordSourceError(source, reason string) {
	SourceFetchErrors.WithLabelValues(source, reason).Inc()
}

// RecordAggregation records one full aggregation call.
func RecordAggregation(listings, failedSources int, duration time.Duration) {
	AggregateDuration.Observe(duration.Seconds())
	AggregateListings.Observe(float64(listings))
	AggregateFailedSources.Add(float64(failedSources))
}

// RecordCacheHit records a response cache hit.
func RecordCacheHit(cache string) {
	CacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a response cache miss.
func RecordCacheMiss(cache string) {
	CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordCacheEviction records a capacity eviction.
func RecordCacheEviction(cache string) {
	CacheEvictionsTotal.WithLabelValues(cache).Inc()
}

// UpdateCacheEntries sets the current entry count for a cache.
func UpdateCacheEntries(cache string, entries int) {
	CacheEntries.WithLabelValues(cache).Set(float64(entries))
}

// UpdateListingsStored sets the persisted listing count.
func UpdateListingsStored(count int) {
	ListingsStored.Set(float64(count))
}

// RecordRefreshRun records a worker refresh run outcome.
func RecordRefreshRun(status string) {
	RefreshRunsTotal.WithLabelValues(status).Inc()
}
