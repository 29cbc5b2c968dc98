// Package transcriptcache stores downloaded transcripts on disk, one text
// file per video and language pair. Keys use the language string exactly as
// the caller supplied it, so "en" and "en (auto)" cache independently.
package transcriptcache
