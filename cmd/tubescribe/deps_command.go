package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tubescribe/internal/config"
	"tubescribe/internal/deps"
	"tubescribe/internal/services/ytdlp"
)

const versionProbeTimeout = 10 * time.Second

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that required external tools are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			missing := false
			for _, status := range statuses {
				detail := status.Detail
				state := "missing"
				switch {
				case status.Available:
					state = "ok"
					if status.Name == deps.YtDlpName {
						detail = probeYtDlpVersion(cmd.Context(), cfg)
					}
				case !status.Optional:
					missing = true
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"TOOL", "COMMAND", "STATUS", "DETAIL"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if missing {
				return fmt.Errorf("missing required tools")
			}
			return nil
		},
	}
}

func probeYtDlpVersion(ctx context.Context, cfg *config.Config) string {
	probeCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()
	version, err := ytdlp.NewClient(cfg).Version(probeCtx)
	if err != nil {
		return fmt.Sprintf("version probe failed: %v", err)
	}
	return "version " + version
}
