package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tracks <video>",
		Short: "List subtitle tracks for a video",
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
				return writeJSON(cmd, meta.Tracks)
			}

			out := cmd.OutOrStdout()
			if len(meta.Tracks) == 0 {
				fmt.Fprintln(out, "No subtitle tracks available")
				return nil
			}
			fmt.Fprintln(out, renderTracksTable(meta.Tracks))
			fmt.Fprintf(out, "Use a LANGUAGE value with `tubescribe transcript %s <language>`\n", videoID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit tracks as JSON")
	return cmd
}
