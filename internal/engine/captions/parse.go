// Package captions decodes YouTube timedtext payloads into timed segments.
//
// Four wire encodings are handled: json3 (structured events), srv3
// (<timedtext> paragraph XML), the legacy <transcript> XML dialect, and a
// last-resort "HH:MM:SS.mmm --> HH:MM:SS.mmm" cue-text format. Detection is
// content-sniffed; a payload no decoder accepts yields zero segments, never
// an error, so the fetch loop can treat it as one more recoverable miss.
package captions

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Parse decodes a raw caption payload into ordered segments. Source order is
// preserved; no re-sorting is performed.
func Parse(raw string) []engine.Segment {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	head := raw
	if len(head) > 200 {
		head = head[:200]
	}

	if strings.HasPrefix(raw, "{") {
		if segs, err := parseJSON3(raw); err == nil {
			return segs
		}
	}
	if strings.Contains(head, "<timedtext") {
		segs, _ := parseSRV3(raw)
		return segs
	}
	if strings.Contains(head, "<transcript") || strings.HasPrefix(raw, "<?xml") {
		segs, _ := parseTranscriptXML(raw)
		return segs
	}

	// Unrecognized head: probe the XML dialects, then cue text.
	if segs, err := parseSRV3(raw); err == nil && len(segs) > 0 {
		return segs
	}
	if segs, err := parseTranscriptXML(raw); err == nil && len(segs) > 0 {
		return segs
	}
	return parseCueText(raw)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatTimestamp(startSec float64) string {
	s := int(startSec)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func segmentMs(startMs, durMs int64, text string) engine.Segment {
	return segmentSec(float64(startMs)/1000, float64(durMs)/1000, text)
}

func segmentSec(start, dur float64, text string) engine.Segment {
	return engine.Segment{
		Timestamp: formatTimestamp(start),
		Start:     round2(start),
		Duration:  round2(dur),
		Text:      text,
	}
}

// --- json3 ---

type json3Doc struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	TStartMs    int64      `json:"tStartMs"`
	DDurationMs int64      `json:"dDurationMs"`
	Segs        []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

func parseJSON3(raw string) ([]engine.Segment, error) {
	var doc json3Doc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	var segs []engine.Segment
	for _, ev := range doc.Events {
		var sb strings.Builder
		for _, s := range ev.Segs {
			sb.WriteString(s.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" || text == "\n" {
			continue
		}
		segs = append(segs, segmentMs(ev.TStartMs, ev.DDurationMs, text))
	}
	return segs, nil
}

// --- srv3 (<timedtext> paragraph XML) ---

type srv3Doc struct {
	Paragraphs []srv3Para `xml:"body>p"`
}

type srv3Para struct {
	T    int64     `xml:"t,attr"`
	D    int64     `xml:"d,attr"`
	Text string    `xml:",chardata"`
	Runs []srv3Run `xml:"s"`
}

type srv3Run struct {
	Text string `xml:",chardata"`
}

func parseSRV3(raw string) ([]engine.Segment, error) {
	var doc srv3Doc
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	var segs []engine.Segment
	for _, p := range doc.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			sb.WriteString(r.Text)
		}
		text := sb.String()
		if text == "" {
			text = p.Text
		}
		// Caption text reaching the XML layer is often double-escaped.
		text = html.UnescapeString(strings.TrimSpace(text))
		if text == "" {
			continue
		}
		segs = append(segs, segmentMs(p.T, p.D, text))
	}
	return segs, nil
}

// --- legacy <transcript> XML (times in decimal seconds) ---

type transcriptDoc struct {
	Lines []transcriptLine `xml:"text"`
}

type transcriptLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}

func parseTranscriptXML(raw string) ([]engine.Segment, error) {
	var doc transcriptDoc
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	var segs []engine.Segment
	for _, ln := range doc.Lines {
		text := html.UnescapeString(strings.TrimSpace(ln.Text))
		if text == "" {
			continue
		}
		segs = append(segs, segmentSec(ln.Start, ln.Dur, text))
	}
	return segs, nil
}

// --- cue text ("00:00:01.234 --> 00:00:03.456" blocks) ---

var cueTimingRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})\.(\d{3})`)

func cueSeconds(m []string, off int) float64 {
	h := atoi(m[off])
	min := atoi(m[off+1])
	s := atoi(m[off+2])
	ms := atoi(m[off+3])
	return float64(h)*3600 + float64(min)*60 + float64(s) + float64(ms)/1000
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

func parseCueText(raw string) []engine.Segment {
	var segs []engine.Segment
	lines := strings.Split(raw, "\n")
	for i := 0; i < len(lines); i++ {
		m := cueTimingRe.FindStringSubmatch(strings.TrimRight(lines[i], "\r"))
		if m == nil {
			continue
		}
		start := cueSeconds(m, 1)
		end := cueSeconds(m, 5)

		var parts []string
		for i++; i < len(lines); i++ {
			text := strings.TrimSpace(strings.TrimRight(lines[i], "\r"))
			if text == "" {
				break
			}
			if cueTimingRe.MatchString(text) {
				i--
				break
			}
			parts = append(parts, text)
		}
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}
		segs = append(segs, segmentSec(start, end-start, text))
	}
	return segs
}
