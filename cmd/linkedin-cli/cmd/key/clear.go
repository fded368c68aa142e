package key

import (
	"fmt"
	"linkedin-dashboard/cmd/linkedin-cli/globals"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Removes the stored RapidAPI key.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		err := globals.Get(ctx).Store.ClearCredential(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "RapidAPI key cleared.")
		return nil
	},
}
