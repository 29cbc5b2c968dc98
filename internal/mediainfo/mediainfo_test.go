package mediainfo

import (
	"testing"

	"tubescribe/internal/services/ytdlp"
)

func TestFromPayloadManualWinsOverAuto(t *testing.T) {
	payload := ytdlp.Payload{
		ID: "dQw4w9WgXcQ",
		Subtitles: map[string][]ytdlp.TrackPayload{
			"en": {{Ext: "vtt", URL: "https://example.test/manual.vtt", Name: "English"}},
		},
		AutomaticCaptions: map[string][]ytdlp.TrackPayload{
			"en": {{Ext: "vtt", URL: "https://example.test/auto.vtt", Name: "English"}},
			"de": {{Ext: "vtt", URL: "https://example.test/de.vtt", Name: "German"}},
		},
	}

	meta := FromPayload(payload)
	if len(meta.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d: %+v", len(meta.Tracks), meta.Tracks)
	}
	if meta.Tracks[0].LanguageCode != "en" || meta.Tracks[0].Auto {
		t.Fatalf("expected manual en track first, got %+v", meta.Tracks[0])
	}
	if meta.Tracks[0].URL != "https://example.test/manual.vtt" {
		t.Fatalf("manual URL should win for en, got %q", meta.Tracks[0].URL)
	}
	if meta.Tracks[1].LanguageCode != "de (auto)" || !meta.Tracks[1].Auto {
		t.Fatalf("expected auto-qualified de track, got %+v", meta.Tracks[1])
	}
}

func TestFromPayloadPrefersVTTVariant(t *testing.T) {
	payload := ytdlp.Payload{
		Subtitles: map[string][]ytdlp.TrackPayload{
			"en": {
				{Ext: "srv1", URL: "https://example.test/en.srv1"},
				{Ext: "vtt", URL: "https://example.test/en.vtt"},
				{Ext: "ttml", URL: "https://example.test/en.ttml"},
			},
			"fr": {
				{Ext: "srv1", URL: "https://example.test/fr.srv1"},
				{Ext: "ttml", URL: "https://example.test/fr.ttml"},
			},
		},
	}

	meta := FromPayload(payload)
	if len(meta.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(meta.Tracks))
	}
	if meta.Tracks[0].URL != "https://example.test/en.vtt" {
		t.Fatalf("expected vtt variant for en, got %q", meta.Tracks[0].URL)
	}
	if meta.Tracks[1].URL != "https://example.test/fr.srv1" {
		t.Fatalf("expected first variant fallback for fr, got %q", meta.Tracks[1].URL)
	}
}

func TestFromPayloadSkipsEmptyVariantLists(t *testing.T) {
	payload := ytdlp.Payload{
		Subtitles: map[string][]ytdlp.TrackPayload{
			"en": {},
		},
		AutomaticCaptions: map[string][]ytdlp.TrackPayload{
			"en": {{Ext: "vtt", URL: "https://example.test/auto.vtt"}},
		},
	}

	meta := FromPayload(payload)
	if len(meta.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d: %+v", len(meta.Tracks), meta.Tracks)
	}
	if meta.Tracks[0].LanguageCode != "en (auto)" {
		t.Fatalf("empty manual group should not shadow auto track, got %q", meta.Tracks[0].LanguageCode)
	}
}

func TestFromPayloadSynthesizesDisplayNames(t *testing.T) {
	payload := ytdlp.Payload{
		AutomaticCaptions: map[string][]ytdlp.TrackPayload{
			"fr":       {{Ext: "vtt", URL: "https://example.test/fr.vtt"}},
			"zz-bogus": {{Ext: "vtt", URL: "https://example.test/zz.vtt"}},
			"en":       {{Ext: "vtt", URL: "https://example.test/en.vtt", Name: "English (auto)"}},
		},
	}

	meta := FromPayload(payload)
	byCode := make(map[string]SubtitleTrack, len(meta.Tracks))
	for _, track := range meta.Tracks {
		byCode[track.LanguageCode] = track
	}
	if got := byCode["fr (auto)"].DisplayName; got != "French (auto)" {
		t.Fatalf("expected synthesized French name, got %q", got)
	}
	if got := byCode["zz-bogus (auto)"].DisplayName; got != "zz-bogus (auto)" {
		t.Fatalf("expected code fallback for unknown tag, got %q", got)
	}
	if got := byCode["en (auto)"].DisplayName; got != "English (auto)" {
		t.Fatalf("payload name already qualified should not double up, got %q", got)
	}
}

func TestFromPayloadScalarDefaults(t *testing.T) {
	meta := FromPayload(ytdlp.Payload{ID: "abc123", Duration: 212.9, Uploader: "Some Uploader"})
	if meta.ID != "abc123" {
		t.Fatalf("expected id carried over, got %q", meta.ID)
	}
	if meta.Title != "" || meta.Description != "" || meta.UploadDate != "" || meta.ThumbnailURL != "" {
		t.Fatalf("expected empty string defaults, got %+v", meta)
	}
	if meta.DurationSeconds != 212 {
		t.Fatalf("expected duration truncated to 212, got %d", meta.DurationSeconds)
	}
	if meta.ViewCount != 0 {
		t.Fatalf("expected zero view count, got %d", meta.ViewCount)
	}
	if meta.ChannelName != "Some Uploader" {
		t.Fatalf("expected uploader fallback, got %q", meta.ChannelName)
	}
	if len(meta.Tracks) != 0 {
		t.Fatalf("expected no tracks, got %+v", meta.Tracks)
	}
}

func TestFromPayloadChannelPreferredOverUploader(t *testing.T) {
	meta := FromPayload(ytdlp.Payload{Channel: "Channel Name", Uploader: "Uploader Name"})
	if meta.ChannelName != "Channel Name" {
		t.Fatalf("expected channel preferred, got %q", meta.ChannelName)
	}
}

func TestFromPayloadDeterministicOrder(t *testing.T) {
	payload := ytdlp.Payload{
		Subtitles: map[string][]ytdlp.TrackPayload{
			"fr": {{Ext: "vtt"}},
			"de": {{Ext: "vtt"}},
		},
		AutomaticCaptions: map[string][]ytdlp.TrackPayload{
			"ja": {{Ext: "vtt"}},
			"es": {{Ext: "vtt"}},
		},
	}

	want := []string{"de", "fr", "es (auto)", "ja (auto)"}
	for i := 0; i < 5; i++ {
		meta := FromPayload(payload)
		if len(meta.Tracks) != len(want) {
			t.Fatalf("expected %d tracks, got %d", len(want), len(meta.Tracks))
		}
		for j, code := range want {
			if meta.Tracks[j].LanguageCode != code {
				t.Fatalf("run %d: expected %q at index %d, got %q", i, code, j, meta.Tracks[j].LanguageCode)
			}
		}
	}
}

func TestTrackLookup(t *testing.T) {
	meta := VideoMetadata{Tracks: []SubtitleTrack{
		{LanguageCode: "en"},
		{LanguageCode: "de (auto)", Auto: true},
	}}

	if _, ok := meta.Track("en"); !ok {
		t.Fatal("expected en track to resolve")
	}
	track, ok := meta.Track("de (auto)")
	if !ok || !track.Auto {
		t.Fatalf("expected auto de track, got %+v ok=%v", track, ok)
	}
	if _, ok := meta.Track("de"); ok {
		t.Fatal("bare de should not match the auto-qualified code")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"en (auto)", "en"},
		{"  en (auto)  ", "en"},
		{"pt-BR (auto)", "pt-BR"},
		{"", ""},
		{"(auto)", "(auto)"},
	}
	for _, tc := range cases {
		if got := NormalizeLanguage(tc.in); got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
