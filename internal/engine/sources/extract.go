package sources

// ExtractJSONObject returns the complete JSON object starting at s[start]
// by tracking brace depth, honoring double-quoted strings and backslash
// escapes. The surrounding document need not be valid JSON. Returns false
// if s[start] is not '{' or the object never closes (truncated document).
func ExtractJSONObject(s string, start int) (string, bool) {
	if start < 0 || start >= len(s) || s[start] != '{' {
		return "", false
	}
	depth := 0
	inStr := false
	esc := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if esc {
			esc = false
			continue
		}
		switch {
		case inStr && c == '\\':
			esc = true
		case c == '"':
			inStr = !inStr
		case inStr:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
