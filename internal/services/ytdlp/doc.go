// Package ytdlp wraps the yt-dlp command line tool behind a small client.
//
// The client owns argument construction (browser cookie policy, metadata
// dumps, subtitle downloads), applies the configured run timeout, and
// classifies failures: a tool that cannot start surfaces as
// services.ErrToolUnavailable, a non-zero exit as services.ExtractionError
// with the exit code and captured stderr preserved. Command execution sits
// behind the Runner interface so tests can substitute recorded outputs
// without spawning processes.
package ytdlp
