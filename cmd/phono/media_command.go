package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"phono/internal/mediacache"
)

func newMediaCommand(ctx *commandContext) *cobra.Command {
	mediaCmd := &cobra.Command{
		Use:   "media",
		Short: "Derived media utilities",
	}

	mediaCmd.AddCommand(newMediaStatusCommand(ctx))

	return mediaCmd
}

func newMediaStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show derived media generation outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return fmt.Errorf("open media ledger: %w", err)
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list media outcomes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No derived media recorded yet; run `phono build` first.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					record.Slug,
					string(record.Status),
					mediaArtifactSummary(record),
					record.UpdatedAt.Local().Format(time.DateTime),
					record.Message,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Slug", "Status", "Artifacts", "Updated", "Message"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func mediaArtifactSummary(record mediacache.Record) string {
	switch {
	case record.WaveformPath != "" && record.VideoPath != "":
		return "waveform, video"
	case record.WaveformPath != "":
		return "waveform"
	case record.VideoPath != "":
		return "video"
	default:
		return "none"
	}
}
