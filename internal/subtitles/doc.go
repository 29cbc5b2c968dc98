// Package subtitles parses the caption formats yt-dlp produces.
//
// Two WebVTT readers share one tokenizer: ParseEntries keeps cue timing and
// yields one entry per cue, ParseTranscript flattens cues to plain dialogue
// text with rolling-caption repeats collapsed. ParseJSON3 reads YouTube's
// json3 timed-text documents. RenderSRT formats timed entries as SubRip for
// export.
//
// The parsers are tolerant by construction: unknown structural lines are
// skipped, absent fields default to empty or zero, and cue timing is taken
// as written without validation.
package subtitles
