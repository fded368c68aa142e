package key

import (
	"bufio"
	"fmt"
	"linkedin-dashboard/cmd/linkedin-cli/globals"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Stores the RapidAPI key, reads it from stdin when no argument is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store := globals.Get(ctx).Store

		var value string
		if len(args) == 1 {
			value = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read key from stdin: %w", err)
			}
			value = line
		}
		value = strings.TrimSpace(value)

		err := store.SetCredential(ctx, value)
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "RapidAPI key cleared.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "RapidAPI key saved.")
		return nil
	},
}
