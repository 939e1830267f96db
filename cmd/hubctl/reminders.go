package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	// reminders command flags
	remPriority string
)

func init() {
	rootCmd.AddCommand(remindersCmd)
	remindersCmd.AddCommand(remindersDigestCmd)

	remindersCmd.Flags().StringVar(&remPriority, "priority", "", "Lowest priority to show: high, medium or low")
}

// remindersCmd prints the reminder worklist
var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Show the prioritized reminder worklist",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		list, err := newClient().Reminders(ctx, remPriority)
		if err != nil {
			return err
		}

		return printResult(cmd, list, func() {
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to follow up on")
				return
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRIORITY\tINFLUENCER\tREASON\tDETAIL")
			for _, r := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Priority, r.InfluencerName, r.Reason, r.Detail)
			}
			w.Flush()
		})
	},
}

// remindersDigestCmd triggers a digest delivery on the server
var remindersDigestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Send the reminder digest now",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		result, err := newClient().SendDigest(ctx)
		if err != nil {
			return err
		}

		return printResult(cmd, result, func() {
			if !result.Sent {
				fmt.Fprintln(cmd.OutOrStdout(), "No reminders to send")
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent digest with %d reminders\n", result.Reminders)
		})
	},
}
