package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pratik-mahalle/numera/pkg/client"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"reports"},
		Short:   "Generate and manage numerology reports",
	}

	cmd.AddCommand(newReportGenerateCmd())
	cmd.AddCommand(newReportHistoryCmd())
	cmd.AddCommand(newReportDeleteCmd())

	return cmd
}

func newReportGenerateCmd() *cobra.Command {
	var (
		name, dob, reportType string
		extra                 []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report (uses one query)",
		Example: `  numera report generate --name "Jane Doe" --dob 1990-01-15
  numera report generate --name "Jane Doe" --dob 1990-01-15 --set birthPlace=Oslo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = promptInput(cmd, "Full name: ")
			}
			if dob == "" {
				dob = promptInput(cmd, "Date of birth (YYYY-MM-DD): ")
			}

			fields, err := parseExtra(extra)
			if err != nil {
				return err
			}

			rep, err := apiClient.Reports().Generate(context.Background(), client.GenerateRequest{
				FullName:    name,
				DateOfBirth: dob,
				Type:        reportType,
				Extra:       fields,
			})
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(rep)
			}

			r := rep.Result
			fmt.Fprintf(out, "Report %s (%s)\n", rep.ID, rep.Type)
			fmt.Fprintln(out, strings.Repeat("=", 40))
			fmt.Fprintf(out, "  Life path:       %d\n", r.LifePathNumber)
			fmt.Fprintf(out, "  Destiny:         %d\n", r.DestinyNumber)
			fmt.Fprintf(out, "  Personality:     %d\n", r.PersonalityNumber)
			fmt.Fprintf(out, "  Personal year:   %d\n", r.PersonalYear)
			fmt.Fprintf(out, "  Lucky color:     %s\n", r.LuckyColor)
			fmt.Fprintf(out, "  Lucky number:    %d\n", r.LuckyNumber)
			fmt.Fprintf(out, "  Lucky numbers:   %s\n", formatInts(r.LuckyNumbers))
			fmt.Fprintf(out, "  Compatible with: %s\n", formatInts(r.CompatibleNumbers))
			fmt.Fprintln(out)
			fmt.Fprintln(out, r.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&dob, "dob", "", "date of birth")
	cmd.Flags().StringVar(&reportType, "type", "", "report type: numerology, astrology, tarot, custom")
	cmd.Flags().StringArrayVar(&extra, "set", nil, "extra input field as key=value (repeatable)")

	return cmd
}

func newReportHistoryCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"list", "ls"},
		Short:   "List your reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Reports().History(context.Background(), &client.ListOptions{Page: page, Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to list reports: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			if len(result.Reports) == 0 {
				fmt.Fprintln(out, "No reports found.")
				return nil
			}

			table := NewTable("ID", "TYPE", "NAME", "LIFE PATH", "CREATED")
			for _, rep := range result.Reports {
				name, _ := rep.InputData["fullName"].(string)
				table.AddRow(
					rep.ID,
					rep.Type,
					truncate(name, 30),
					fmt.Sprintf("%d", rep.Result.LifePathNumber),
					rep.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.Render()

			p := result.Pagination
			fmt.Fprintf(out, "\nPage %d of %d (%d reports)\n", p.Page, p.Pages, p.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "reports per page (max 100)")

	return cmd
}

func newReportDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a report (the query is not refunded)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Reports().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete report: %w", err)
			}
			fmt.Fprintf(out, "Report %s deleted\n", args[0])
			return nil
		},
	}
}

// parseExtra turns key=value pairs into input fields
func parseExtra(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	fields := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set value %q, expected key=value", pair)
		}
		if key == "fullName" || key == "dateOfBirth" {
			return nil, fmt.Errorf("use --name and --dob for %s", key)
		}
		fields[key] = value
	}
	return fields, nil
}
