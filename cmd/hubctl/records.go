package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"github.com/spf13/cobra"
)

// listColumns are the columns shown per resource in table output
var listColumns = map[string][]string{
	"influencers": {hub.ColID, "Name", "Handle", "Platform", "Follower Count"},
	"campaigns":   {hub.ColID, hub.ColInfluencerName, hub.ColType, hub.ColStatus, hub.ColUpdatedAt},
	"shipments":   {hub.ColID, hub.ColInfluencerName, "Tracking Number", "Date Shipped", "Date Delivered"},
	"content":     {hub.ColID, hub.ColInfluencerName, "Post Link", "Whitelisting Approved", "Ad Access Expiry Date"},
	"contracts":   {hub.ColID, hub.ColInfluencerName, "Start Date", "End Date", "Monthly Rate"},
	"activity":    {hub.ColCreatedAt, hub.ColInfluencerName, "Note", "Created By"},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// listCmd lists every row of a resource
var listCmd = &cobra.Command{
	Use:       "list <resource>",
	Short:     "List influencers, campaigns, shipments, content, contracts or activity",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"influencers", "campaigns", "shipments", "content", "contracts", "activity"},
	RunE: func(cmd *cobra.Command, args []string) error {
		resource := strings.ToLower(args[0])
		columns, ok := listColumns[resource]
		if !ok {
			return fmt.Errorf("unknown resource '%s'", args[0])
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		recs, err := newClient().List(ctx, resource)
		if err != nil {
			return err
		}

		return printResult(cmd, recs, func() {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join(columns, "\t"))
			for _, rec := range recs {
				row := make([]string, len(columns))
				for i, col := range columns {
					row[i] = rec[col]
				}
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			w.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", len(recs), resource)
		})
	},
}
