// Package main implements hubctl, a command-line client for the influencer hub API.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ethanbaker/influencer-hub/pkg/sdk"
	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL of the hub API
	serverURL string
	// apiKey is sent as X-API-KEY
	apiKey string
	// outputJSON prints raw JSON instead of tables
	outputJSON bool
	// timeout bounds each request
	timeout time.Duration
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hubctl",
	Short: "CLI for the influencer hub API",
	Long: `hubctl talks to a running influencer hub server. It lists records,
shows the reminder worklist, imports external spreadsheets and manages demo data.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "hub server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("HUB_API_KEY"), "API key (defaults to $HUB_API_KEY)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Request timeout")

	rootCmd.AddCommand(healthCmd)
}

// healthCmd checks server health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check hub server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		status, err := newClient().Health(ctx)
		if err != nil {
			return err
		}
		return printResult(cmd, status, func() {
			fmt.Fprintf(cmd.OutOrStdout(), "Server %s is %s\n", serverURL, status.Status)
		})
	},
}

func newClient() *sdk.Client {
	return sdk.NewClient(serverURL, apiKey)
}

// printResult writes v as indented JSON when --json is set, otherwise runs human
func printResult(cmd *cobra.Command, v any, human func()) error {
	if !outputJSON {
		human()
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
