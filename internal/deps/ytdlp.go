package deps

import (
	"strings"

	"tubescribe/internal/config"
)

// YtDlpName identifies the yt-dlp requirement in status output.
const YtDlpName = "yt-dlp"

const ytdlpDescription = "Fetches video metadata and subtitle tracks"

// Requirements returns the external binaries the fetch pipeline needs, with
// commands taken from configuration. CheckBinaries resolves and probes them.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        YtDlpName,
			Command:     ytdlpCommand(cfg),
			Description: ytdlpDescription,
		},
	}
}

func ytdlpCommand(cfg *config.Config) string {
	if cfg != nil {
		if binary := strings.TrimSpace(cfg.YtDlp.Binary); binary != "" {
			return binary
		}
	}
	return YtDlpName
}
