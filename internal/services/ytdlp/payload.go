package ytdlp

import (
	"encoding/json"

	"tubescribe/internal/services"
)

// Payload is the typed shape of a yt-dlp --dump-json document, reduced to the
// fields the pipeline consumes. Fields absent from the tool output decode to
// their zero values.
type Payload struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description"`
	Duration          float64                   `json:"duration"`
	Thumbnail         string                    `json:"thumbnail"`
	Channel           string                    `json:"channel"`
	Uploader          string                    `json:"uploader"`
	UploadDate        string                    `json:"upload_date"`
	ViewCount         int64                     `json:"view_count"`
	Subtitles         map[string][]TrackPayload `json:"subtitles"`
	AutomaticCaptions map[string][]TrackPayload `json:"automatic_captions"`
}

// TrackPayload is one caption variant within a language group.
type TrackPayload struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ParseMetadata decodes a metadata dump into its typed form. Documents that
// do not decode as a metadata object fail with services.ErrMalformedMetadata.
func ParseMetadata(data []byte) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Payload{}, services.Wrap(services.ErrMalformedMetadata, "parse metadata", "", err)
	}
	return payload, nil
}
