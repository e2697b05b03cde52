package extract

// extractJSONBlock returns the first balanced {...} object substring of text.
// Models wrap JSON in prose or fenced code blocks; everything outside the
// object is ignored. Returns "{}" when no object is found.
func extractJSONBlock(text string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range text {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}
	return "{}"
}
