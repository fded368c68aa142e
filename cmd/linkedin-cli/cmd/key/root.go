package key

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "key",
	Short: "The 'key' subcommand manages the stored RapidAPI key.",
}
