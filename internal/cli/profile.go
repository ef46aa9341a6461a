package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := apiClient.Dashboard().Profile(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get profile: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(profile)
			}

			table := NewTable("FIELD", "VALUE")
			table.AddRow("ID", profile.ID)
			table.AddRow("Email", profile.Email)
			table.AddRow("Name", profile.Name)
			table.AddRow("Plan", profile.Plan)
			table.AddRow("Queries", formatUsage(profile.UsedQueries, profile.QueryLimit))
			table.AddRow("Member since", profile.CreatedAt.Format("2006-01-02"))
			table.Render()
			return nil
		},
	}

	cmd.AddCommand(newProfileSetNameCmd())

	return cmd
}

func newProfileSetNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-name <name>",
		Short: "Change your display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := apiClient.Dashboard().UpdateProfile(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
			fmt.Fprintf(out, "Name updated to %s\n", profile.Name)
			return nil
		},
	}
}
