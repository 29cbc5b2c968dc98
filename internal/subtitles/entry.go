package subtitles

// Entry is a single timed caption: its text plus start and end offsets in
// seconds from the beginning of the video.
type Entry struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
