package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// WatchPageSource scrapes the video's watch page and extracts the player
// response JSON embedded in a script element. The most expensive strategy
// (full document fetch) and the most fingerprinted one, so it goes through
// the browser-profile client when available.
type WatchPageSource struct {
	BaseURL string // watch URL prefix; empty means the real site
}

func (WatchPageSource) Label() string { return "html-extraction" }

const playerResponseMarker = "ytInitialPlayerResponse"

func (w WatchPageSource) FetchTracks(ctx context.Context, s *Session, videoID string) ([]engine.CaptionTrack, error) {
	engine.IncrWatchPageFetch()

	base := w.BaseURL
	if base == "" {
		base = watchPageURL
	}
	body, status, err := s.GetBrowser(ctx, base+videoID, 6*1024*1024)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	if status != 200 {
		return nil, fmt.Errorf("watch page: HTTP %d", status)
	}

	raw, err := extractPlayerResponse(string(body))
	if err != nil {
		return nil, err
	}
	return tracksFromScrapedPlayer(raw)
}

// extractPlayerResponse locates the ytInitialPlayerResponse assignment inside
// the watch page's script elements and returns the balanced JSON object.
// Falls back to a whole-document scan when the page does not parse as HTML.
func extractPlayerResponse(page string) (string, error) {
	script := findMarkerScript(page)
	if script == "" {
		script = page
	}
	start := markerObjectStart(script)
	if start < 0 {
		return "", errors.New("ytInitialPlayerResponse not found")
	}
	obj, ok := ExtractJSONObject(script, start)
	if !ok {
		return "", errors.New("could not parse ytInitialPlayerResponse")
	}
	return obj, nil
}

// markerObjectStart finds the first marker occurrence followed by an
// assignment and returns the index of its opening brace. The marker text
// alone is not enough: it can appear inside string literals in the same
// script, so the brace must sit right after "= ".
func markerObjectStart(script string) int {
	for from := 0; ; {
		idx := strings.Index(script[from:], playerResponseMarker)
		if idx < 0 {
			return -1
		}
		i := from + idx + len(playerResponseMarker)
		for i < len(script) && (script[i] == ' ' || script[i] == '\t') {
			i++
		}
		if i < len(script) && script[i] == '=' {
			i++
			for i < len(script) && (script[i] == ' ' || script[i] == '\t') {
				i++
			}
			if i < len(script) && script[i] == '{' {
				return i
			}
		}
		from += idx + len(playerResponseMarker)
	}
}

// findMarkerScript walks the HTML tree for the script element whose text
// contains the player response marker.
func findMarkerScript(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return ""
	}
	var found string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "script" {
			if c := n.FirstChild; c != nil && c.Type == html.TextNode &&
				strings.Contains(c.Data, playerResponseMarker) {
				found = c.Data
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

// tracksFromScrapedPlayer pulls caption tracks out of the extracted player
// JSON. The scraped document's schema drifts more than the API's, so this
// path reads it with gjson path lookups instead of a fixed struct.
func tracksFromScrapedPlayer(raw string) ([]engine.CaptionTrack, error) {
	if !gjson.Valid(raw) {
		return nil, errors.New("could not parse ytInitialPlayerResponse")
	}
	player := gjson.Parse(raw)

	if status := player.Get("playabilityStatus.status").String(); status != "" && status != "OK" {
		reason := player.Get("playabilityStatus.reason").String()
		if reason == "" {
			reason = status
		}
		return nil, fmt.Errorf("%s", reason)
	}

	var tracks []engine.CaptionTrack
	player.Get("captions.playerCaptionsTracklistRenderer.captionTracks").ForEach(func(_, t gjson.Result) bool {
		baseURL := t.Get("baseUrl").String()
		if strings.TrimSpace(baseURL) == "" {
			return true
		}
		label := t.Get("name.simpleText").String()
		if label == "" {
			label = t.Get("name.runs.0.text").String()
		}
		tracks = append(tracks, engine.CaptionTrack{
			BaseURL:      baseURL,
			LanguageCode: t.Get("languageCode").String(),
			Label:        label,
			Kind:         t.Get("kind").String(),
		})
		return true
	})
	if len(tracks) == 0 {
		return nil, errNoTracks
	}
	return tracks, nil
}
