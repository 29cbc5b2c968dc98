package subtitles

import (
	"encoding/json"
	"fmt"
	"strings"
)

// json3Document mirrors YouTube's json3 timed-text wire format, reduced to
// the fields the pipeline consumes. Every field may be absent and decodes to
// its zero value.
type json3Document struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMS    int64      `json:"tStartMs"`
	DurationMS int64      `json:"dDurationMs"`
	Segments   []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// ParseJSON3 converts a json3 caption document into timed entries. Segment
// texts of an event are concatenated without separators; events whose text
// trims to nothing are skipped. No de-duplication is applied.
func ParseJSON3(content string) ([]Entry, error) {
	var doc json3Document
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("parse json3: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Events))
	for _, event := range doc.Events {
		var b strings.Builder
		for _, seg := range event.Segments {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}
		start := float64(event.StartMS) / 1000
		entries = append(entries, Entry{
			Text:  text,
			Start: start,
			End:   start + float64(event.DurationMS)/1000,
		})
	}
	return entries, nil
}
