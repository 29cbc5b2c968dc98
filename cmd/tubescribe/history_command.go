package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent fetch operations from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openJournal()
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Journal is disabled (journal.enabled = false)")
				return nil
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, records)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No journaled operations yet")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				status := rec.Status
				if rec.ErrorKind != "" {
					status = fmt.Sprintf("%s (%s)", rec.Status, rec.ErrorKind)
				}
				rows = append(rows, []string{
					rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					rec.Operation,
					rec.VideoID,
					rec.Language,
					status,
					yesNo(rec.CacheHit),
					(time.Duration(rec.DurationMS) * time.Millisecond).String(),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"TIME", "OPERATION", "VIDEO", "LANGUAGE", "STATUS", "CACHED", "TOOK"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of operations to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit history as JSON")
	return cmd
}
