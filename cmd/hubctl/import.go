package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importPreviewCmd)
	importCmd.AddCommand(importRunCmd)
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import existing influencer spreadsheets",
	Long: `Import existing influencer tracking spreadsheets from Google Sheets.

Examples:
  # Look at the tabs of a spreadsheet before importing
  hubctl import preview https://docs.google.com/spreadsheets/d/<id>/edit

  # Import two spreadsheets
  hubctl import run <url> <url>`,
}

// importPreviewCmd shows the raw shape of external spreadsheets
var importPreviewCmd = &cobra.Command{
	Use:   "preview <url...>",
	Short: "Show headers and sample rows of external spreadsheets",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := newClient().ImportPreview(ctx, args)
		if err != nil {
			return err
		}

		return printResult(cmd, resp, func() {
			out := cmd.OutOrStdout()
			for _, result := range resp.Results {
				fmt.Fprintln(out, result.URL)
				if result.Error != nil {
					fmt.Fprintf(out, "  error: %s\n", *result.Error)
					continue
				}

				names := make([]string, 0, len(result.Sheets))
				for name := range result.Sheets {
					names = append(names, name)
				}
				sort.Strings(names)

				for _, name := range names {
					sheet := result.Sheets[name]
					fmt.Fprintf(out, "  %s (%d rows)\n", name, sheet.RowCount)
					fmt.Fprintf(out, "    headers: %s\n", strings.Join(sheet.Headers, " | "))
					for _, row := range sheet.Sample {
						fmt.Fprintf(out, "    %s\n", strings.Join(row, " | "))
					}
				}
			}
		})
	},
}

// importRunCmd imports external spreadsheets
var importRunCmd = &cobra.Command{
	Use:   "run <url...>",
	Short: "Import external spreadsheets into the hub",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := newClient().ImportRun(ctx, args)
		if err != nil {
			return err
		}

		return printResult(cmd, resp, func() {
			out := cmd.OutOrStdout()
			r := resp.Results
			fmt.Fprintf(out, "Imported %d influencers, %d campaigns, %d shipments, %d content, %d contracts\n",
				r.Influencers, r.Campaigns, r.Shipments, r.Content, r.Contracts)

			if len(resp.FlaggedRows) == 0 {
				return
			}

			fmt.Fprintf(out, "\n%d rows need review:\n", r.Flagged)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SOURCE\tROW\tREASON")
			for _, row := range resp.FlaggedRows {
				source, reason := row.Sheet, row.Reason
				if row.Error != "" {
					source, reason = row.URL, row.Error
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", source, row.Row, reason)
			}
			w.Flush()
		})
	},
}
