// go_transcript — YouTube transcript retrieval service.
//
// The googleapis.com mirror of the Innertube /player endpoint accepts the
// ANDROID client from datacenter IPs where youtube.com answers "Sign in to
// confirm you're not a bot", so the mobile identities come first and the
// watch-page scrape runs last. Serves a small REST API and, when MCP_PORT
// is set, an MCP tool surface.
package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/server"
	"github.com/anatolykoptev/go_transcript/internal/transcriptserver"
)

var (
	version = "dev"
	port    = env.Str("PORT", "5000")
	mcpPort = env.Str("MCP_PORT", "")
)

func main() {
	initEngine()

	slog.Info("starting go_transcript",
		slog.String("port", port),
		slog.String("mcp_port", mcpPort),
	)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      server.New().Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
	}

	if mcpPort == "" {
		if err := srv.ListenAndServe(); err != nil {
			slog.Error("server failed", slog.Any("error", err))
		}
		return
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			slog.Error("rest server failed", slog.Any("error", err))
		}
	}()

	mcpSrv := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)
	transcriptserver.RegisterTools(mcpSrv)

	if err := mcpserver.Run(mcpSrv, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 180 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("mcp server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		PreferredLang: env.Str("TRANSCRIPT_LANG", "en"),
		ProxyURL:      env.Str("PROXY_URL", ""),
		CookieBlob:    env.Str("YT_COOKIE", ""),
		FetchTimeout:  env.Duration("FETCH_TIMEOUT", 15*time.Second),
		WatchTimeout:  env.Duration("WATCH_TIMEOUT", 30*time.Second),
		RateLimitRPS:  env.Float("RATE_LIMIT_RPS", 0),
	}
	if order := env.Str("TRANSCRIPT_STRATEGIES", ""); order != "" {
		c.StrategyOrder = strings.Split(order, ",")
	}

	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(30))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Warn("stealth client init failed, watch page uses plain client", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	engine.Init(c)
}
