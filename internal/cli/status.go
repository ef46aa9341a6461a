package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"stats"},
		Short:   "Show dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient.Dashboard().Stats(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(stats)
			}

			fmt.Fprintln(out, "Numera Dashboard")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			if stats.UserName != "" {
				fmt.Fprintf(out, "  User:          %s\n", stats.UserName)
			}
			fmt.Fprintf(out, "  Plan:          %s\n", stats.PlanType)
			fmt.Fprintf(out, "  Queries:       %s used\n", formatUsage(stats.UsedQueries, stats.QueryLimit))
			fmt.Fprintf(out, "  Remaining:     %d\n", stats.RemainingUsage)
			fmt.Fprintf(out, "  Reports:       %d stored\n", stats.TotalReports)
			return nil
		},
	}
}
