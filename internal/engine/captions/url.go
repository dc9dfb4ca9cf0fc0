package captions

import (
	"regexp"
	"strings"
)

// Timedtext URL negotiation. A baseUrl carrying exp=xpe returns empty bodies
// when fetched outside a browser (the parameter gates a PoToken check), so
// the stripped variant is tried before the original. Each URL variant is then
// expanded into three encoding attempts in fixed order.

// URLVariant is one base URL to attempt, tagged for diagnostics.
type URLVariant struct {
	Tag string // "no-exp" or "original"
	URL string
}

// Formats are the caption encodings attempted per URL variant, in order.
// The empty string means no explicit fmt parameter (platform default).
var Formats = []string{"json3", "srv3", ""}

var (
	expParamRe = regexp.MustCompile(`[&?]exp=[^&]*`)
	sparamsRe  = regexp.MustCompile(`[&?]sparams=[^&]*`)
	fmtParamRe = regexp.MustCompile(`fmt=[^&]*`)
)

// StripExp removes the exp query parameter, including its entry in the
// comma-joined sparams list, leaving sibling values untouched. A sparams
// pair whose only value was exp is dropped whole rather than left dangling.
func StripExp(u string) string {
	u = expParamRe.ReplaceAllString(u, "")
	return sparamsRe.ReplaceAllStringFunc(u, func(m string) string {
		values := strings.Split(m[strings.IndexByte(m, '=')+1:], ",")
		kept := values[:0]
		for _, v := range values {
			if v != "exp" {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			return ""
		}
		return m[:1] + "sparams=" + strings.Join(kept, ",")
	})
}

// URLVariants returns the base URLs to attempt, stripped variant first when
// the exp parameter is present.
func URLVariants(baseURL string) []URLVariant {
	var out []URLVariant
	if strings.Contains(baseURL, "exp=") {
		out = append(out, URLVariant{Tag: "no-exp", URL: StripExp(baseURL)})
	}
	return append(out, URLVariant{Tag: "original", URL: baseURL})
}

// WithFormat rewrites or appends the fmt query parameter. An empty format
// returns the URL unchanged.
func WithFormat(u, format string) string {
	if format == "" {
		return u
	}
	if strings.Contains(u, "fmt=") {
		return fmtParamRe.ReplaceAllString(u, "fmt="+format)
	}
	return u + "&fmt=" + format
}

// FormatTag names a format for diagnostics ("default" for the empty format).
func FormatTag(format string) string {
	if format == "" {
		return "default"
	}
	return format
}
