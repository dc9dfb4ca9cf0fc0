package engine

import (
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	PreferredLang string         // default caption language, e.g. "en"
	ProxyURL      string         // upstream proxy for all outbound calls ("" = direct)
	CookieBlob    string         // externally supplied auth cookie header value ("" = anonymous)
	StrategyOrder []string       // override of the strategy priority list (nil = default)
	FetchTimeout  time.Duration  // per-call timeout for API and timedtext requests
	WatchTimeout  time.Duration  // per-call timeout for the watch page fetch
	RateLimitRPS  float64        // outbound request pacing (0 = unlimited)
	BrowserClient *BrowserClient // nil = watch page fetched with the plain client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, captions).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
