package config

const (
	defaultCacheDir       = "~/.local/share/tubescribe/cache"
	defaultScratchDir     = "~/.local/share/tubescribe/scratch"
	defaultLogDir         = "~/.local/share/tubescribe/logs"
	defaultJournalPath    = "~/.local/share/tubescribe/journal.db"
	defaultYtDlpBinary    = "yt-dlp"
	defaultCookiesBrowser = "chrome"
	defaultTimeoutSeconds = 180
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults. Binary and
// browser are left empty here so environment fallbacks in normalize can take
// effect before the compiled-in defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir:   defaultCacheDir,
			ScratchDir: defaultScratchDir,
			LogDir:     defaultLogDir,
		},
		YtDlp: YtDlp{
			CookiesFromBrowser: true,
			TimeoutSeconds:     defaultTimeoutSeconds,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
