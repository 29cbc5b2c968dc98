package mediainfo

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"tubescribe/internal/services/ytdlp"
)

// AutoSuffix qualifies language codes that are only available as automatic
// captions. Download requests strip it again before the code reaches the
// extraction tool.
const AutoSuffix = " (auto)"

// SubtitleTrack describes one selectable caption track for a video.
type SubtitleTrack struct {
	LanguageCode string `json:"language_code"`
	DisplayName  string `json:"display_name"`
	URL          string `json:"url,omitempty"`
	Auto         bool   `json:"auto"`
}

// VideoMetadata is the normalized view of a metadata dump. Missing payload
// fields degrade to zero values rather than errors.
type VideoMetadata struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DurationSeconds int64           `json:"duration_seconds"`
	ChannelName     string          `json:"channel_name"`
	ViewCount       int64           `json:"view_count"`
	UploadDate      string          `json:"upload_date"`
	ThumbnailURL    string          `json:"thumbnail_url"`
	Tracks          []SubtitleTrack `json:"tracks"`
}

// NormalizeLanguage strips the auto qualifier from a track code so callers can
// pass listed codes straight back into download requests.
func NormalizeLanguage(lang string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(lang), AutoSuffix))
}

// FromPayload normalizes a raw metadata payload. Manual subtitle languages are
// listed first in code order, then automatic-only languages with auto-qualified
// codes. A language present in both groups yields only the manual track.
func FromPayload(p ytdlp.Payload) VideoMetadata {
	meta := VideoMetadata{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		DurationSeconds: int64(p.Duration),
		ChannelName:     channelName(p),
		ViewCount:       p.ViewCount,
		UploadDate:      p.UploadDate,
		ThumbnailURL:    p.Thumbnail,
	}

	manual := make(map[string]struct{}, len(p.Subtitles))
	for _, code := range sortedCodes(p.Subtitles) {
		variant, ok := pickVariant(p.Subtitles[code])
		if !ok {
			continue
		}
		manual[code] = struct{}{}
		meta.Tracks = append(meta.Tracks, SubtitleTrack{
			LanguageCode: code,
			DisplayName:  displayName(variant.Name, code),
			URL:          variant.URL,
		})
	}

	for _, code := range sortedCodes(p.AutomaticCaptions) {
		if _, hasManual := manual[code]; hasManual {
			continue
		}
		variant, ok := pickVariant(p.AutomaticCaptions[code])
		if !ok {
			continue
		}
		meta.Tracks = append(meta.Tracks, SubtitleTrack{
			LanguageCode: code + AutoSuffix,
			DisplayName:  autoDisplayName(variant.Name, code),
			URL:          variant.URL,
			Auto:         true,
		})
	}
	return meta
}

// Track returns the listed track whose code matches lang exactly.
func (m VideoMetadata) Track(lang string) (SubtitleTrack, bool) {
	for _, track := range m.Tracks {
		if track.LanguageCode == lang {
			return track, true
		}
	}
	return SubtitleTrack{}, false
}

func channelName(p ytdlp.Payload) string {
	if p.Channel != "" {
		return p.Channel
	}
	return p.Uploader
}

func sortedCodes(groups map[string][]ytdlp.TrackPayload) []string {
	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// pickVariant selects the variant to represent a language: the first VTT
// entry when one exists, otherwise the first entry.
func pickVariant(variants []ytdlp.TrackPayload) (ytdlp.TrackPayload, bool) {
	if len(variants) == 0 {
		return ytdlp.TrackPayload{}, false
	}
	for _, variant := range variants {
		if variant.Ext == "vtt" {
			return variant, true
		}
	}
	return variants[0], true
}

func displayName(name, code string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return languageName(code)
}

func autoDisplayName(name, code string) string {
	base := displayName(name, code)
	if strings.HasSuffix(base, "(auto)") {
		return base
	}
	return base + AutoSuffix
}

var englishNames = display.English.Languages()

// languageName resolves a BCP 47 code to its English name, falling back to
// the code itself for tags the registry cannot parse.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := englishNames.Name(tag); name != "" {
		return name
	}
	return code
}
