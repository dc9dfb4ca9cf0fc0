package engine

// --- Transcript domain types ---

// CaptionTrack is one selectable caption stream from a player response.
type CaptionTrack struct {
	BaseURL      string // timedtext retrieval URL
	LanguageCode string
	Label        string // human-readable track name
	Kind         string // "asr" = auto-generated
}

// Generated reports whether the track was produced by speech recognition.
func (t CaptionTrack) Generated() bool { return t.Kind == "asr" }

// Segment is one timed caption line.
type Segment struct {
	Timestamp string  `json:"timestamp"` // "MM:SS", derived from Start
	Start     float64 `json:"start"`     // seconds, rounded to 2 decimals
	Duration  float64 `json:"duration"`  // seconds, rounded to 2 decimals
	Text      string  `json:"text"`
}

// TranscriptResult is the final output of a successful cascade run.
type TranscriptResult struct {
	VideoID      string    `json:"video_id"`
	Language     string    `json:"language"`
	LanguageCode string    `json:"language_code"`
	IsGenerated  bool      `json:"is_generated"`
	Segments     []Segment `json:"segments"`
	FullText     string    `json:"full_text"`
	Source       string    `json:"source"` // strategy label that produced it
}

// AttemptError records one failed step of the cascade. Attempts are
// accumulated across all strategies and surfaced to the caller only when
// every strategy is exhausted.
type AttemptError struct {
	Strategy string // strategy label, e.g. "ANDROID (www.googleapis.com)"
	Stage    string // "metadata", "tracks" or "timedtext"
	Message  string
}

func (e AttemptError) String() string {
	return e.Strategy + ": " + e.Message
}

// ErrorStrings flattens attempt errors for wire responses.
func ErrorStrings(errs []AttemptError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.String())
	}
	return out
}

// --- Tool / API types ---

// TranscriptInput is the input for the youtube_transcript tool and the
// /api/transcript endpoint.
type TranscriptInput struct {
	URL      string `json:"url,omitempty" jsonschema:"YouTube video URL (watch, youtu.be, embed, shorts) or bare 11-char video ID"`
	VideoID  string `json:"video_id,omitempty" jsonschema:"Explicit 11-character video ID, takes precedence over url"`
	Language string `json:"language,omitempty" jsonschema:"Preferred caption language code (default: en)"`
}
