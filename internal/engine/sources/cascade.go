package sources

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// errNoTracks marks the "video playable but carries no captions" failure,
// distinct from playability and transport failures.
var errNoTracks = errors.New("no caption tracks")

// attempt is a stage/message pair before it is bound to a strategy label.
type attempt struct {
	stage   string
	message string
}

// Strategy pairs a metadata source with its diagnostic label. The watch-page
// scrape is itself a strategy, so its position in the order is configurable
// like any other; by default it runs last.
type Strategy struct {
	Label  string
	Source MetadataSource
}

// DefaultStrategies returns the built-in priority order: googleapis.com
// mobile identities, then the youtube.com WEB identity, then the watch-page
// scrape.
func DefaultStrategies() []Strategy {
	var out []Strategy
	for _, id := range defaultIdentities {
		src := PlayerAPISource{Identity: id}
		out = append(out, Strategy{Label: src.Label(), Source: src})
	}
	scrape := WatchPageSource{}
	return append(out, Strategy{Label: scrape.Label(), Source: scrape})
}

// strategiesFromOrder reorders the defaults by name ("ANDROID", "IOS",
// "HTML", ...). Unknown names are skipped with a warning so a typo in the
// deployment override degrades instead of failing startup.
func strategiesFromOrder(order []string) []Strategy {
	byName := map[string]Strategy{}
	for _, id := range defaultIdentities {
		src := PlayerAPISource{Identity: id}
		byName[id.Name] = Strategy{Label: src.Label(), Source: src}
	}
	scrape := WatchPageSource{}
	byName["HTML"] = Strategy{Label: scrape.Label(), Source: scrape}

	var out []Strategy
	for _, name := range order {
		name = strings.ToUpper(strings.TrimSpace(name))
		s, ok := byName[name]
		if !ok {
			slog.Warn("unknown strategy in override, skipping", slog.String("name", name))
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return DefaultStrategies()
	}
	return out
}

// Cascade tries strategies sequentially in priority order and returns the
// first successful transcript. All per-strategy failures are local: they are
// recorded and the next strategy runs. Nothing below the cascade aborts it.
type Cascade struct {
	strategies []Strategy
	lang       string
}

// NewCascade builds a cascade from the engine configuration. A non-empty
// lang overrides the configured preferred caption language for this run.
func NewCascade(lang string) *Cascade {
	strategies := DefaultStrategies()
	if len(engine.Cfg.StrategyOrder) > 0 {
		strategies = strategiesFromOrder(engine.Cfg.StrategyOrder)
	}
	if lang == "" {
		lang = engine.Cfg.PreferredLang
	}
	if lang == "" {
		lang = "en"
	}
	return &Cascade{strategies: strategies, lang: lang}
}

// StrategyLabels lists the configured strategy order, for the health surface.
func (c *Cascade) StrategyLabels() []string {
	out := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		out = append(out, s.Label)
	}
	return out
}

// Run executes the cascade for one video. Returns the first successful
// result, or nil plus every attempt diagnostic accumulated along the way.
func (c *Cascade) Run(ctx context.Context, videoID string) (*engine.TranscriptResult, []engine.AttemptError) {
	session, err := NewSession()
	if err != nil {
		// Session construction fails only on config defects (bad proxy URL).
		return nil, []engine.AttemptError{{Strategy: "session", Stage: "metadata", Message: err.Error()}}
	}

	var all []engine.AttemptError
	for _, strat := range c.strategies {
		engine.IncrStrategyAttempt()
		slog.Info("trying strategy", slog.String("video", videoID), slog.String("strategy", strat.Label))

		tracks, err := strat.Source.FetchTracks(ctx, session, videoID)
		if err != nil {
			engine.IncrStrategyFailure()
			all = append(all, engine.AttemptError{Strategy: strat.Label, Stage: stageFor(err), Message: err.Error()})
			continue
		}

		slog.Info("caption tracks found",
			slog.String("video", videoID),
			slog.String("strategy", strat.Label),
			slog.Int("tracks", len(tracks)))

		result, attempts := fetchCaptions(ctx, session, videoID, tracks, strat.Label, c.lang)
		if result != nil {
			engine.IncrSuccess()
			return result, nil
		}
		engine.IncrStrategyFailure()
		for _, a := range attempts {
			all = append(all, engine.AttemptError{Strategy: strat.Label, Stage: a.stage, Message: a.message})
		}
	}

	engine.IncrExhausted()
	return nil, all
}

func stageFor(err error) string {
	if errors.Is(err, errNoTracks) {
		return "tracks"
	}
	return "metadata"
}
