// Package server is the HTTP front-end: request parsing, video ID
// validation, and shaping cascade output into wire responses. All retrieval
// logic lives in engine/sources.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
)

const genericFailure = "Could not fetch transcript. The video may not have captions, or YouTube blocked the request."

type transcriptRequest struct {
	URL      string `json:"url"`
	VideoID  string `json:"video_id"`
	Language string `json:"language"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Server is the REST front-end. The cascade held here serves the health
// surface; transcript requests build their own request-scoped cascade so a
// per-request language preference applies.
type Server struct {
	cascade *sources.Cascade
}

// New builds the front-end.
func New() *Server {
	return &Server{cascade: sources.NewCascade("")}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transcript", s.handleTranscript)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	vid := strings.TrimSpace(req.VideoID)
	rawURL := strings.TrimSpace(req.URL)
	if vid == "" && rawURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Please provide a YouTube video URL."})
		return
	}
	if vid == "" {
		vid = engine.ExtractVideoID(rawURL)
	}
	if !engine.ValidVideoID(vid) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid YouTube URL. Please check and try again."})
		return
	}

	engine.IncrTranscriptRequest()
	slog.Info("transcript request", slog.String("video", vid))

	// A panic below the handler is a defect, not an expected failure mode;
	// convert it to the generic response without leaking internals.
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("transcript handler panic", slog.String("video", vid), slog.Any("panic", rec))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: genericFailure})
		}
	}()

	result, errs := sources.NewCascade(req.Language).Run(r.Context(), vid)
	if result != nil {
		slog.Info("transcript success",
			slog.String("video", vid),
			slog.String("source", result.Source),
			slog.Int("segments", len(result.Segments)))
		writeJSON(w, http.StatusOK, result)
		return
	}

	slog.Warn("transcript exhausted", slog.String("video", vid), slog.Int("attempts", len(errs)))
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   genericFailure,
		Details: engine.ErrorStrings(errs),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"strategies":       s.cascade.StrategyLabels(),
		"proxy_configured": engine.Cfg.ProxyURL != "",
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(engine.FormatMetrics()))
}
