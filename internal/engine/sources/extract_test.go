package sources

import (
	"strings"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		start int
		want  string
		ok    bool
	}{
		{"simple", `{"a":1}`, 0, `{"a":1}`, true},
		{"nested", `{"a":{"b":{"c":3}}};var x`, 0, `{"a":{"b":{"c":3}}}`, true},
		{"braces inside strings", `{"a":"}{"} trailing`, 0, `{"a":"}{"}`, true},
		{"escaped quote", `{"a":"x\"}y"}`, 0, `{"a":"x\"}y"}`, true},
		{"escaped backslash before quote", `{"a":"x\\"}`, 0, `{"a":"x\\"}`, true},
		{"offset start", `var p = {"a":1};`, 8, `{"a":1}`, true},
		{"not an object", `[1,2,3]`, 0, "", false},
		{"truncated", `{"a":{"b":1}`, 0, "", false},
		{"start out of range", `{}`, 5, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.in, tt.start)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ExtractJSONObject() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractPlayerResponse(t *testing.T) {
	page := `<html><head><script>var a = 1;</script></head><body>
<script>var ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"},"captions":{}};var meta = {"x":1};</script>
</body></html>`
	obj, err := extractPlayerResponse(page)
	if err != nil {
		t.Fatalf("extractPlayerResponse: %v", err)
	}
	if !strings.Contains(obj, `"playabilityStatus"`) || strings.Contains(obj, "meta") {
		t.Errorf("wrong object extracted: %q", obj)
	}
}

// A marker mention inside a string literal must not bind the wrong object;
// only the marker followed by an assignment counts.
func TestExtractPlayerResponseMarkerInString(t *testing.T) {
	page := `<html><body>
<script>var cfg = {"note":"set ytInitialPlayerResponse later","wrong":{"a":1}};
var ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"}};</script>
</body></html>`
	obj, err := extractPlayerResponse(page)
	if err != nil {
		t.Fatalf("extractPlayerResponse: %v", err)
	}
	if !strings.Contains(obj, `"playabilityStatus"`) || strings.Contains(obj, "wrong") {
		t.Errorf("wrong object extracted: %q", obj)
	}
}

func TestExtractPlayerResponseMissing(t *testing.T) {
	if _, err := extractPlayerResponse("<html><body>nothing here</body></html>"); err == nil {
		t.Error("expected error for page without marker")
	}
}

func TestExtractPlayerResponseTruncated(t *testing.T) {
	page := `<script>var ytInitialPlayerResponse = {"a":{"b":1}`
	if _, err := extractPlayerResponse(page); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
