package logutil

// TruncateForLog keeps at most maxLen runes of s and marks the cut with "...".
// Buyer keys and upstream bodies are logged through it.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
