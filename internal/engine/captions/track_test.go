package captions

import (
	"testing"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

func track(lang, kind string) engine.CaptionTrack {
	return engine.CaptionTrack{BaseURL: "http://x/" + lang + kind, LanguageCode: lang, Kind: kind}
}

func TestPickTrack(t *testing.T) {
	tests := []struct {
		name   string
		tracks []engine.CaptionTrack
		want   engine.CaptionTrack
	}{
		{
			"manual beats asr for exact language",
			[]engine.CaptionTrack{track("en", "asr"), track("en", ""), track("fr", "")},
			track("en", ""),
		},
		{
			"asr accepted when no manual exists",
			[]engine.CaptionTrack{track("en", "asr"), track("fr", "")},
			track("en", "asr"),
		},
		{
			"prefix match",
			[]engine.CaptionTrack{track("fr", ""), track("en-GB", "asr")},
			track("en-GB", "asr"),
		},
		{
			"first track fallback",
			[]engine.CaptionTrack{track("es", ""), track("de", "")},
			track("es", ""),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickTrack(tt.tracks, "en")
			if !ok {
				t.Fatal("PickTrack returned no track")
			}
			if got != tt.want {
				t.Errorf("PickTrack() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPickTrackEmpty(t *testing.T) {
	if _, ok := PickTrack(nil, "en"); ok {
		t.Error("PickTrack(nil) should report no track")
	}
}

func TestPickTrackPreferredLanguage(t *testing.T) {
	tracks := []engine.CaptionTrack{track("en", ""), track("fr", "")}
	got, ok := PickTrack(tracks, "fr")
	if !ok || got.LanguageCode != "fr" {
		t.Errorf("PickTrack(lang=fr) = %+v", got)
	}
}
