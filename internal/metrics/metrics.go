package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type leagueStats struct {
	resolutions int
	lastWeek    int
	fallbacks   int
}

// Recorder captures in-memory counters and forwards them to OpenTelemetry
// instruments when Setup enabled them.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	leagues map[string]*leagueStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:   make(map[string]*providerStats),
		leagues: make(map[string]*leagueStats),
		otel:    otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordWeekResolution counts a current-week lookup for a league. fallback
// marks results that came from the league's terminal week.
func (r *Recorder) RecordWeekResolution(league string, week int, fallback bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.leagues[league]
	if !ok {
		stats = &leagueStats{}
		r.leagues[league] = stats
	}
	stats.resolutions++
	stats.lastWeek = week
	if fallback {
		stats.fallbacks++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordWeekResolution(league, week, fallback)
	}
}

// WeekResolutions returns how many current-week lookups ran for a league.
func (r *Recorder) WeekResolutions(league string) int {
	return r.League(league).Resolutions
}

// LeagueSnapshot is a copy of per-league resolution stats.
type LeagueSnapshot struct {
	Resolutions int
	LastWeek    int
	Fallbacks   int
}

// League returns a copy of the resolution stats for league.
func (r *Recorder) League(league string) LeagueSnapshot {
	if r == nil {
		return LeagueSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.leagues[league]
	if !ok {
		return LeagueSnapshot{}
	}
	return LeagueSnapshot{
		Resolutions: stats.resolutions,
		LastWeek:    stats.lastWeek,
		Fallbacks:   stats.fallbacks,
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// RecordSnapshotWrite tracks snapshot persistence outcomes.
func (r *Recorder) RecordSnapshotWrite(err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordSnapshotWrite(err)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
