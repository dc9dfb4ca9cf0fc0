package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// The /player call carries the identity's protocol headers and the
// prettyPrint=false query parameter alongside the API key.
func TestPlayerRequestIdentity(t *testing.T) {
	initTestEngine(t)

	var gotQuery map[string][]string
	gotHeaders := http.Header{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotHeaders = r.Header.Clone()
		fmt.Fprint(w, playerJSON("OK", "", map[string]any{"baseUrl": "http://x", "languageCode": "en"}))
	}))
	defer ts.Close()

	id := ClientIdentity{
		Name:         "ANDROID",
		ClientNameID: "3",
		Endpoint:     ts.URL,
		UserAgent:    ytAndroidUA,
		Client:       innertubeClient{ClientName: "ANDROID", ClientVersion: ytAndroidVersion},
	}
	session, err := NewSession()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := (PlayerAPISource{Identity: id}).FetchTracks(context.Background(), session, "dQw4w9WgXcQ"); err != nil {
		t.Fatalf("FetchTracks: %v", err)
	}

	if got := gotQuery["prettyPrint"]; len(got) != 1 || got[0] != "false" {
		t.Errorf("prettyPrint = %v, want [false]", got)
	}
	if got := gotQuery["key"]; len(got) != 1 || got[0] != innertubeAPIKey {
		t.Errorf("key = %v", got)
	}
	if got := gotHeaders.Get("X-Youtube-Client-Name"); got != "3" {
		t.Errorf("X-Youtube-Client-Name = %q, want %q", got, "3")
	}
	if got := gotHeaders.Get("X-Youtube-Client-Version"); got != ytAndroidVersion {
		t.Errorf("X-Youtube-Client-Version = %q, want %q", got, ytAndroidVersion)
	}
	if got := gotHeaders.Get("User-Agent"); got != ytAndroidUA {
		t.Errorf("User-Agent = %q, want %q", got, ytAndroidUA)
	}
}

func playableResp(tracks ...captionTrackJSON) innertubePlayerResp {
	r := innertubePlayerResp{PlayabilityStatus: &playabilityStatus{Status: "OK"}}
	if len(tracks) > 0 {
		r.Captions = &captionsRenderer{}
		r.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks = tracks
	}
	return r
}

func TestTracksFromPlayer(t *testing.T) {
	tests := []struct {
		name    string
		resp    innertubePlayerResp
		wantErr string
		wantN   int
	}{
		{
			name:    "not playable carries platform reason",
			resp:    innertubePlayerResp{PlayabilityStatus: &playabilityStatus{Status: "LOGIN_REQUIRED", Reason: "Sign in to confirm you're not a bot"}},
			wantErr: "Sign in",
		},
		{
			name:    "not playable without reason falls back to status",
			resp:    innertubePlayerResp{PlayabilityStatus: &playabilityStatus{Status: "LOGIN_REQUIRED"}},
			wantErr: "LOGIN_REQUIRED",
		},
		{
			name:    "playable but no captions field",
			resp:    playableResp(),
			wantErr: "no caption tracks",
		},
		{
			name:  "tracks extracted",
			resp:  playableResp(captionTrackJSON{BaseURL: "http://x", LanguageCode: "en"}),
			wantN: 1,
		},
		{
			name:    "tracks without urls are dropped",
			resp:    playableResp(captionTrackJSON{BaseURL: "  ", LanguageCode: "en"}),
			wantErr: "no caption tracks",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracks, err := tracksFromPlayer(tt.resp)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want substring %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tracks) != tt.wantN {
				t.Errorf("got %d tracks, want %d", len(tracks), tt.wantN)
			}
		})
	}
}

func TestCaptionTrackLabel(t *testing.T) {
	var tr captionTrackJSON
	tr.Name.SimpleText = "English"
	if tr.label() != "English" {
		t.Errorf("label = %q", tr.label())
	}
	var runs captionTrackJSON
	runs.Name.Runs = []struct {
		Text string `json:"text"`
	}{{Text: "English (auto-generated)"}}
	if runs.label() != "English (auto-generated)" {
		t.Errorf("label = %q", runs.label())
	}
	var empty captionTrackJSON
	if empty.label() != "" {
		t.Errorf("label = %q", empty.label())
	}
}
