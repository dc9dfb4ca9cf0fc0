package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/captions"
)

// fetchCaptions picks the best track, then walks the bounded
// (URL variant × format) grid until one attempt parses into segments.
// Every unsuccessful pair is recorded; the first success wins.
func fetchCaptions(ctx context.Context, s *Session, videoID string, tracks []engine.CaptionTrack, source, lang string) (*engine.TranscriptResult, []attempt) {
	track, ok := captions.PickTrack(tracks, lang)
	if !ok {
		return nil, []attempt{{stage: "tracks", message: "No suitable caption track found"}}
	}

	slog.Info("fetching timedtext",
		slog.String("video", videoID),
		slog.String("lang", track.LanguageCode),
		slog.String("source", source),
		slog.Bool("exp", strings.Contains(track.BaseURL, "exp=")))

	var errs []attempt
	for _, variant := range captions.URLVariants(track.BaseURL) {
	formats:
		for _, format := range captions.Formats {
			tag := variant.Tag + "/" + captions.FormatTag(format)
			engine.IncrTimedtextFetch()

			resp, err := s.Get(ctx, captions.WithFormat(variant.URL, format), nil)
			if err != nil {
				errs = append(errs, attempt{stage: "timedtext", message: fmt.Sprintf("Timedtext (%s): %v", tag, err)})
				continue
			}
			body, readErr := io.ReadAll(io.LimitReader(resp.Body, 8*1024*1024))
			resp.Body.Close()

			switch {
			case resp.StatusCode == 404:
				// The base URL itself is invalid; other formats
				// for this variant would 404 the same way.
				errs = append(errs, attempt{stage: "timedtext", message: fmt.Sprintf("Timedtext (%s): 404", tag)})
				break formats
			case resp.StatusCode != 200:
				errs = append(errs, attempt{stage: "timedtext", message: fmt.Sprintf("Timedtext (%s): HTTP %d", tag, resp.StatusCode)})
				continue
			case readErr != nil:
				errs = append(errs, attempt{stage: "timedtext", message: fmt.Sprintf("Timedtext (%s): %v", tag, readErr)})
				continue
			case len(strings.TrimSpace(string(body))) == 0:
				errs = append(errs, attempt{stage: "timedtext", message: fmt.Sprintf("Timedtext (%s): empty", tag)})
				continue
			}

			segs := captions.Dedup(captions.Parse(string(body)))
			if len(segs) == 0 {
				errs = append(errs, attempt{stage: "timedtext", message: fmt.Sprintf("Timedtext (%s): 0 segments", tag)})
				continue
			}

			return buildResult(videoID, track, segs, source), nil
		}
	}
	return nil, errs
}

func buildResult(videoID string, track engine.CaptionTrack, segs []engine.Segment, source string) *engine.TranscriptResult {
	language := track.Label
	if language == "" {
		language = track.LanguageCode
	}
	texts := make([]string, 0, len(segs))
	for _, s := range segs {
		texts = append(texts, s.Text)
	}
	return &engine.TranscriptResult{
		VideoID:      videoID,
		Language:     language,
		LanguageCode: track.LanguageCode,
		IsGenerated:  track.Generated(),
		Segments:     segs,
		FullText:     strings.Join(texts, " "),
		Source:       source,
	}
}
