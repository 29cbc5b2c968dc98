// Package transcripts is the high-level entry point for fetching video
// metadata and subtitle transcripts. It orchestrates the yt-dlp client,
// scratch sessions, the transcript cache, and the fetch journal behind three
// operations: video info, plain transcripts, and timestamped entries.
package transcripts
