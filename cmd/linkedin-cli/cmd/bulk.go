package cmd

import (
	"context"
	"fmt"
	"linkedin-dashboard/internal/dashboard"
	"linkedin-dashboard/internal/linkedin"
	"linkedin-dashboard/lib/telemetry"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	addOutputFlags(bulkCmd)
	rootCmd.AddCommand(bulkCmd)
}

var bulkCmd = &cobra.Command{
	Use:   "bulk <profiles|companies|comment-analytics> <file.csv>",
	Short: "Uploads a CSV file of identifiers and shows the result for each of them.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := linkedin.BulkKind(args[0])
		if err != nil {
			return err
		}
		contents, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read upload: %w", err)
		}
		q, err := dashboard.BulkQuery(kind, args[1], contents)
		if err != nil {
			return err
		}

		// bulk uploads can take minutes server side
		if Telemetry.Enabled() {
			ctx, stop := context.WithCancel(cmd.Context())
			defer stop()
			telemetry.InstrumentPerfStats(ctx, 15*time.Second)
		}

		return runQuery(cmd, q)
	},
}
