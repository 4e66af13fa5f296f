package transcribe

import (
	"regexp"
	"strings"
)

// timestampPrefix matches the bracketed segment timing whisper-cli prints at
// the start of each stdout line, e.g. "[00:00:00.000 --> 00:00:02.480]".
var timestampPrefix = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}[.,]\d{3} +--> +\d{2}:\d{2}:\d{2}[.,]\d{3}\]\s*`)

// Normalize cleans raw engine stdout into readable transcript text. Segment
// timestamps are stripped, surrounding whitespace trimmed, and blank lines
// dropped; the segment order is preserved.
func Normalize(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = timestampPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
