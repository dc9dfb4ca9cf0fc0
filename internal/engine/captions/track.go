package captions

import (
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// PickTrack selects the best caption track for the preferred language.
// Tie-break order: manual track in the exact language, any track in the
// exact language, language-code prefix match, first track in list order.
// Returns false only for an empty list.
func PickTrack(tracks []engine.CaptionTrack, lang string) (engine.CaptionTrack, bool) {
	if len(tracks) == 0 {
		return engine.CaptionTrack{}, false
	}
	for _, t := range tracks {
		if t.LanguageCode == lang && !t.Generated() {
			return t, true
		}
	}
	for _, t := range tracks {
		if t.LanguageCode == lang {
			return t, true
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, lang) {
			return t, true
		}
	}
	return tracks[0], true
}
