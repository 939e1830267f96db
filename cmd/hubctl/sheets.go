package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
}

// statusCmd reports whether the hub holds data
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the hub holds any influencers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		status, err := newClient().Status(ctx)
		if err != nil {
			return err
		}

		return printResult(cmd, status, func() {
			if status.HasData {
				fmt.Fprintln(cmd.OutOrStdout(), "The hub has data")
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), "The hub is empty, run 'hubctl seed' or 'hubctl import run'")
		})
	},
}

// seedCmd replaces all data with the demo dataset
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with the demo dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := newClient().Seed(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Loaded demo data")
		return nil
	},
}

// resetCmd clears every tab
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every row, keeping the spreadsheet and its headers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := newClient().Init(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared all data")
		return nil
	},
}
