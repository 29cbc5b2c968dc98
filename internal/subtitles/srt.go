package subtitles

import (
	"fmt"
	"math"
	"strings"
)

// RenderSRT formats entries as a SubRip document: 1-based sequence numbers,
// comma-millisecond timestamps, one blank line between cues.
func RenderSRT(entries []Entry) string {
	var b strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1,
			formatSRTTimestamp(entry.Start),
			formatSRTTimestamp(entry.End),
			entry.Text)
	}
	return b.String()
}

func formatSRTTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	// SRT standard uses a comma before the millisecond component.
	total := int64(math.Round(seconds * 1000))
	hours := total / 3_600_000
	minutes := (total % 3_600_000) / 60_000
	secs := (total % 60_000) / 1000
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
