package main

import (
	"context"

	"github.com/spf13/cobra"
)

// requestContext derives a context bounded by --timeout from the command's context
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}
