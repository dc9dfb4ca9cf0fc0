package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	StrategyAttempts   atomic.Int64
	StrategyFailures   atomic.Int64
	TimedtextFetches   atomic.Int64
	WatchPageFetches   atomic.Int64
	Successes          atomic.Int64
	Exhausted          atomic.Int64
}

func IncrTranscriptRequest() { metrics.TranscriptRequests.Add(1) }
func IncrStrategyAttempt()   { metrics.StrategyAttempts.Add(1) }
func IncrStrategyFailure()   { metrics.StrategyFailures.Add(1) }
func IncrTimedtextFetch()    { metrics.TimedtextFetches.Add(1) }
func IncrWatchPageFetch()    { metrics.WatchPageFetches.Add(1) }
func IncrSuccess()           { metrics.Successes.Add(1) }
func IncrExhausted()         { metrics.Exhausted.Add(1) }

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"strategy_attempts":   metrics.StrategyAttempts.Load(),
		"strategy_failures":   metrics.StrategyFailures.Load(),
		"timedtext_fetches":   metrics.TimedtextFetches.Load(),
		"watch_page_fetches":  metrics.WatchPageFetches.Load(),
		"successes":           metrics.Successes.Load(),
		"exhausted":           metrics.Exhausted.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoints.
func FormatMetrics() string {
	m := GetMetrics()
	keys := []string{
		"transcript_requests",
		"strategy_attempts",
		"strategy_failures",
		"timedtext_fetches",
		"watch_page_fetches",
		"successes",
		"exhausted",
	}
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
