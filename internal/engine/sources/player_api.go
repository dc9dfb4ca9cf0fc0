package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// MetadataSource returns the caption track list for a video, or an error
// describing a local failure. Errors from a source never abort the cascade;
// the orchestrator records them and moves on.
type MetadataSource interface {
	FetchTracks(ctx context.Context, s *Session, videoID string) ([]engine.CaptionTrack, error)
}

// PlayerAPISource asks the Innertube /player endpoint for caption tracks,
// impersonating one client identity.
type PlayerAPISource struct {
	Identity ClientIdentity
}

// Label names the strategy for diagnostics, e.g. "ANDROID (www.googleapis.com)".
func (p PlayerAPISource) Label() string {
	host := p.Identity.Endpoint
	if u, err := url.Parse(p.Identity.Endpoint); err == nil {
		host = u.Host
	}
	return fmt.Sprintf("%s (%s)", p.Identity.Name, host)
}

func (p PlayerAPISource) FetchTracks(ctx context.Context, s *Session, videoID string) ([]engine.CaptionTrack, error) {
	body, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client:     p.Identity.Client,
			ThirdParty: p.Identity.ThirdParty,
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	endpoint := p.Identity.Endpoint + "?key=" + innertubeAPIKey + "&prettyPrint=false"
	resp, err := s.PostJSON(ctx, endpoint, p.Identity.headers(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var player innertubePlayerResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, 3*1024*1024)).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return tracksFromPlayer(player)
}

// tracksFromPlayer interprets a player response: a non-OK playability status
// is a local failure carrying the platform's reason, an absent or empty
// track list a distinct one.
func tracksFromPlayer(player innertubePlayerResp) ([]engine.CaptionTrack, error) {
	if ps := player.PlayabilityStatus; ps != nil && ps.Status != "OK" {
		reason := ps.Reason
		if reason == "" {
			reason = ps.Status
		}
		if reason == "" {
			reason = "unknown"
		}
		return nil, fmt.Errorf("%s", reason)
	}
	if player.Captions == nil {
		return nil, errNoTracks
	}
	raw := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(raw) == 0 {
		return nil, errNoTracks
	}
	tracks := make([]engine.CaptionTrack, 0, len(raw))
	for _, t := range raw {
		if strings.TrimSpace(t.BaseURL) == "" {
			continue
		}
		tracks = append(tracks, engine.CaptionTrack{
			BaseURL:      t.BaseURL,
			LanguageCode: t.LanguageCode,
			Label:        t.label(),
			Kind:         t.Kind,
		})
	}
	if len(tracks) == 0 {
		return nil, errNoTracks
	}
	return tracks, nil
}
