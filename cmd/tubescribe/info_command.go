package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tubescribe/internal/mediainfo"
	"tubescribe/internal/services/ytdlp"
	"tubescribe/internal/textutil"
)

const descriptionPreviewLimit = 280

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var fullDescription bool

	cmd := &cobra.Command{
		Use:   "info <video>",
		Short: "Show video metadata and available subtitle tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := resolveVideoID(args[0])
			if err != nil {
				return err
			}

			svc, cleanup, err := ctx.service()
			if err != nil {
				return err
			}
			defer cleanup()

			meta, err := svc.GetVideoInfo(cmd.Context(), videoID)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, meta)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:    %s\n", meta.Title)
			fmt.Fprintf(out, "Channel:  %s\n", meta.ChannelName)
			fmt.Fprintf(out, "Duration: %s\n", formatSeconds(meta.DurationSeconds))
			fmt.Fprintf(out, "Views:    %s\n", humanize.Comma(meta.ViewCount))
			fmt.Fprintf(out, "Uploaded: %s\n", formatUploadDate(meta.UploadDate))
			fmt.Fprintf(out, "URL:      %s\n", ytdlp.WatchURL(meta.ID))
			if desc := strings.TrimSpace(meta.Description); desc != "" {
				if !fullDescription {
					desc = textutil.Truncate(desc, descriptionPreviewLimit)
				}
				fmt.Fprintf(out, "\n%s\n", desc)
			}

			fmt.Fprintln(out)
			if len(meta.Tracks) == 0 {
				fmt.Fprintln(out, "No subtitle tracks available")
				return nil
			}
			fmt.Fprintln(out, renderTracksTable(meta.Tracks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit metadata as JSON")
	cmd.Flags().BoolVar(&fullDescription, "full-description", false, "Print the complete video description")
	return cmd
}

// formatUploadDate turns yt-dlp's YYYYMMDD stamp into YYYY-MM-DD.
func formatUploadDate(raw string) string {
	if len(raw) != 8 {
		return raw
	}
	return raw[:4] + "-" + raw[4:6] + "-" + raw[6:]
}

func renderTracksTable(tracks []mediainfo.SubtitleTrack) string {
	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		kind := "manual"
		if track.Auto {
			kind = "auto"
		}
		rows = append(rows, []string{track.LanguageCode, track.DisplayName, kind})
	}
	return renderTable(
		[]string{"LANGUAGE", "NAME", "TYPE"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}
