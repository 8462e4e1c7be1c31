package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const summaryDurationUnit = time.Millisecond

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the site once",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, _, err := ctx.newBuilder()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			summary, err := builder.Build(signalCtx)
			if err != nil {
				return fmt.Errorf("build site: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Build", "Posts", "Tags", "Duration"},
				[][]string{{
					summary.BuildID,
					fmt.Sprintf("%d", summary.Posts),
					strings.Join(summary.Tags, ", "),
					summary.Duration.Round(summaryDurationUnit).String(),
				}},
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}
}
