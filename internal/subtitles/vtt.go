package subtitles

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// timingPattern matches cue timing lines such as
	// "00:01:02.345 --> 00:01:04.000", tolerating trailing cue settings
	// ("align:start position:0%") after the end stamp.
	timingPattern    = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2})\.(\d{3})`)
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	cueNumberPattern = regexp.MustCompile(`^\d+$`)
)

// entityReplacer unescapes the HTML entities YouTube captions carry. A
// single pass keeps double-encoded sequences ("&amp;lt;") literal.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
)

// ParseEntries converts WebVTT content into timed entries. The text lines of
// a cue are joined with single spaces, markup tags are stripped, and cues
// whose text trims to nothing are dropped. Entity sequences stay as written;
// only the plain-text reducer unescapes them. Consecutive cues with identical
// text are all kept; a trailing cue without a final blank line is still
// emitted.
func ParseEntries(content string) []Entry {
	var entries []Entry
	var textLines []string
	var start, end float64
	inCue := false

	flush := func() {
		if !inCue {
			return
		}
		text := strings.TrimSpace(tagPattern.ReplaceAllString(strings.Join(textLines, " "), ""))
		if text != "" {
			entries = append(entries, Entry{Text: text, Start: start, End: end})
		}
		inCue = false
		textLines = textLines[:0]
	}

	for _, raw := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if trimmed == "" {
			flush()
			continue
		}
		if isStructuralLine(trimmed) {
			continue
		}
		if s, e, ok := parseTimingLine(trimmed); ok {
			// A timing line opens the next cue even when the blank
			// separator before it is missing.
			flush()
			start, end = s, e
			inCue = true
			continue
		}
		if inCue {
			textLines = append(textLines, trimmed)
		}
	}
	flush()

	return entries
}

// ParseTranscript flattens WebVTT content to plain dialogue text, one line
// per caption. Structural lines are dropped, markup tags stripped, HTML
// entities unescaped. A line is kept only when it differs from the
// previously kept line, so rolling-caption repeats collapse while repeats
// with different text in between survive.
func ParseTranscript(content string) string {
	var lines []string
	prev := ""

	for _, raw := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if trimmed == "" || isStructuralLine(trimmed) {
			continue
		}
		if _, _, ok := parseTimingLine(trimmed); ok {
			continue
		}
		text := strings.TrimSpace(entityReplacer.Replace(tagPattern.ReplaceAllString(trimmed, "")))
		if text == "" || text == prev {
			continue
		}
		lines = append(lines, text)
		prev = text
	}

	return strings.Join(lines, "\n")
}

// isStructuralLine reports whether a line carries no caption text: the file
// header, a numeric cue identifier, or stream metadata.
func isStructuralLine(trimmed string) bool {
	if strings.HasPrefix(trimmed, "WEBVTT") {
		return true
	}
	if cueNumberPattern.MatchString(trimmed) {
		return true
	}
	return strings.HasPrefix(trimmed, "Kind:") || strings.HasPrefix(trimmed, "Language:")
}

func parseTimingLine(line string) (float64, float64, bool) {
	m := timingPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	return timestampSeconds(m[1], m[2], m[3], m[4]), timestampSeconds(m[5], m[6], m[7], m[8]), true
}

func timestampSeconds(h, m, s, ms string) float64 {
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	millis, _ := strconv.Atoi(ms)
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000
}
