package key

import (
	"fmt"
	"linkedin-dashboard/cmd/linkedin-cli/globals"

	"github.com/spf13/cobra"
)

var reveal bool

func init() {
	showCmd.Flags().BoolVar(&reveal, "reveal", false, "Print the whole key instead of a masked one.")
	RootCmd.AddCommand(showCmd)
}

// Mask keeps the first and last 4 characters of a key.
func Mask(value string) string {
	if len(value) <= 8 {
		return "********"
	}
	return value[:4] + "…" + value[len(value)-4:]
}

var showCmd = &cobra.Command{
	Use:   "show [--reveal]",
	Short: "Prints the stored RapidAPI key.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		value, err := globals.Get(ctx).Store.Credential(ctx)
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No RapidAPI key stored.")
			return nil
		}
		if reveal {
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), Mask(value))
		return nil
	},
}
