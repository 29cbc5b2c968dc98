package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tubescribe/internal/subtitles"
)

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "transcript <video> <language>",
		Short: "Download the plain-text transcript for a video",
		Long: `Download the transcript for a video in the given language and print it
to stdout. Language codes come from the tracks listing; auto-caption codes
such as "en (auto)" are accepted as-is.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := resolveVideoID(args[0])
			if err != nil {
				return err
			}
			language := strings.TrimSpace(args[1])

			svc, cleanup, err := ctx.service()
			if err != nil {
				return err
			}
			defer cleanup()

			text, err := svc.DownloadSubtitle(cmd.Context(), videoID, language)
			if err != nil {
				return err
			}

			if target := strings.TrimSpace(outputPath); target != "" {
				if err := os.WriteFile(target, []byte(text+"\n"), 0o644); err != nil {
					return fmt.Errorf("write transcript: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote transcript to %s\n", target)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Write the transcript to a file instead of stdout")
	return cmd
}

func newTimedCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "timed <video> <language>",
		Short: "Fetch timestamped subtitle entries",
		Long: `Fetch subtitle entries with start and end timestamps. The command never
fails on fetch problems: when no entries can be produced it prints nothing
and exits zero.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := resolveVideoID(args[0])
			if err != nil {
				return err
			}
			language := strings.TrimSpace(args[1])

			switch format {
			case "srt", "json":
			default:
				return fmt.Errorf("unsupported format %q (use srt or json)", format)
			}

			svc, cleanup, err := ctx.service()
			if err != nil {
				return err
			}
			defer cleanup()

			entries := svc.GetSubtitleWithTimestamps(cmd.Context(), videoID, language)
			if format == "json" {
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), subtitles.RenderSRT(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "srt", "Output format: srt or json")
	return cmd
}
