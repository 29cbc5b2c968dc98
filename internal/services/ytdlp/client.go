package ytdlp

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"tubescribe/internal/config"
	"tubescribe/internal/logging"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// autoOrigSuffix marks yt-dlp's untranslated auto-caption variant of a
// language, e.g. "en-orig" alongside "en".
const autoOrigSuffix = "-orig"

// SubtitleFormat selects the subtitle container yt-dlp should write.
type SubtitleFormat string

const (
	FormatVTT   SubtitleFormat = "vtt"
	FormatJSON3 SubtitleFormat = "json3"
)

// Client invokes yt-dlp with the configured cookie policy and run timeout.
type Client struct {
	binary  string
	browser string
	cookies bool
	timeout time.Duration
	runner  Runner
	logger  *slog.Logger
}

// Option customizes client construction.
type Option func(*Client)

// WithRunner replaces the process runner, primarily for tests.
func WithRunner(runner Runner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithLogger attaches a logger for invocation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "ytdlp")
		}
	}
}

// NewClient builds a client from configuration.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	client := &Client{
		binary:  "yt-dlp",
		cookies: false,
		timeout: 180 * time.Second,
		runner:  commandRunner{},
		logger:  logging.NewNop(),
	}
	if cfg != nil {
		client.binary = cfg.YtDlp.Binary
		client.browser = cfg.YtDlp.CookiesBrowser
		client.cookies = cfg.YtDlp.CookiesFromBrowser
		if cfg.YtDlp.TimeoutSeconds > 0 {
			client.timeout = time.Duration(cfg.YtDlp.TimeoutSeconds) * time.Second
		}
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type callSettings struct {
	noCookies bool
}

// CallOption adjusts a single invocation.
type CallOption func(*callSettings)

// NoCookies disables the browser cookie arguments for one invocation.
func NoCookies() CallOption {
	return func(s *callSettings) { s.noCookies = true }
}

func applyCallOptions(opts []CallOption) callSettings {
	var settings callSettings
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}

// WatchURL returns the canonical watch page URL for a video ID.
func WatchURL(videoID string) string {
	return watchURLPrefix + videoID
}

// DumpMetadata fetches the full metadata document for a video without
// downloading any media. The raw JSON bytes are returned for typed parsing.
func (c *Client) DumpMetadata(ctx context.Context, videoID string, opts ...CallOption) ([]byte, error) {
	settings := applyCallOptions(opts)
	args := append(c.cookieArgs(settings),
		"--dump-json",
		"--no-warnings",
		"--skip-download",
		WatchURL(videoID),
	)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("dump metadata", logging.String(logging.FieldVideoID, videoID))
	stdout, err := c.runner.Run(ctx, c.binary, args)
	if err != nil {
		return nil, err
	}
	return []byte(stdout), nil
}

// DownloadSubtitles asks yt-dlp to write subtitle files for lang (manual or
// automatic) under outputBase. The produced file name is chosen by the tool;
// use SubtitleCandidates to locate it afterwards.
func (c *Client) DownloadSubtitles(ctx context.Context, videoID, lang string, format SubtitleFormat, outputBase string, opts ...CallOption) error {
	settings := applyCallOptions(opts)
	args := append(c.cookieArgs(settings),
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", string(format),
		"--sub-langs", subtitleLangSpec(lang),
		"--no-warnings",
		"-o", outputBase,
		WatchURL(videoID),
	)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("download subtitles",
		logging.String(logging.FieldVideoID, videoID),
		logging.String(logging.FieldLanguage, lang),
		logging.String("format", string(format)))
	_, err := c.runner.Run(ctx, c.binary, args)
	return err
}

// Version reports the tool version string, used by dependency preflight.
func (c *Client) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	out, err := c.runner.Run(ctx, c.binary, []string{"--version"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(firstLine(out)), nil
}

// Binary reports the configured executable path.
func (c *Client) Binary() string {
	return c.binary
}

// cookieArgs returns the argument prefix for the cookie policy. When the
// policy applies, the first two arguments of every invocation are exactly
// --cookies-from-browser <browser>.
func (c *Client) cookieArgs(settings callSettings) []string {
	args := make([]string, 0, 14)
	if c.cookies && !settings.noCookies && c.browser != "" {
		args = append(args, "--cookies-from-browser", c.browser)
	}
	return args
}

func subtitleLangSpec(lang string) string {
	return lang + "," + lang + autoOrigSuffix
}

// SubtitleCandidates returns the files a subtitle download may produce for
// lang, in probe order: the plain language name first, then the auto-caption
// variant.
func SubtitleCandidates(outputBase, lang string, format SubtitleFormat) []string {
	return []string{
		outputBase + "." + lang + "." + string(format),
		outputBase + "." + lang + autoOrigSuffix + "." + string(format),
	}
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return s[:i]
		}
	}
	return s
}
