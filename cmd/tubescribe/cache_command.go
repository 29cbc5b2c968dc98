package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tubescribe/internal/transcriptcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the transcript cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))

	return cacheCmd
}

func (c *commandContext) cache() (*transcriptcache.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	return transcriptcache.NewCache(cfg.Paths.CacheDir, logger), nil
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.cache()
			if err != nil {
				return err
			}
			entries, err := cache.Entries()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Transcript cache is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			var total int64
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Key,
					humanize.IBytes(uint64(entry.Size)),
					humanize.Time(entry.ModTime),
				})
				total += entry.Size
			}
			fmt.Fprintln(out, renderTable(
				[]string{"KEY", "SIZE", "CACHED"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d transcripts, %s total\n", len(entries), humanize.IBytes(uint64(total)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit cache entries as JSON")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.cache()
			if err != nil {
				return err
			}
			removed, err := cache.Clear()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached transcripts\n", removed)
			return nil
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached transcripts older than a cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.cache()
			if err != nil {
				return err
			}
			removed, err := cache.Prune(olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d cached transcripts older than %s\n", removed, olderThan)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age cutoff for pruning (e.g. 720h)")
	return cmd
}
