package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tubescribe/internal/scratch"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove leftover scratch directories from interrupted fetches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			manager, err := scratch.NewManager(cfg.Paths.ScratchDir, logger)
			if err != nil {
				return err
			}
			result, err := manager.Sweep(maxAge)
			if err != nil {
				if errors.Is(err, scratch.ErrSweepBusy) {
					return fmt.Errorf("scratch directory is busy; retry after running fetches finish")
				}
				return err
			}

			out := cmd.OutOrStdout()
			if result.Removed == 0 && len(result.Failed) == 0 {
				fmt.Fprintln(out, "Scratch directory is clean")
				return nil
			}
			fmt.Fprintf(out, "Removed %d scratch sessions, reclaimed %s\n",
				result.Removed, humanize.IBytes(uint64(result.ReclaimedBytes)))
			for _, name := range result.Failed {
				fmt.Fprintf(out, "Could not remove %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "Only remove sessions older than this (0 removes all)")
	return cmd
}
