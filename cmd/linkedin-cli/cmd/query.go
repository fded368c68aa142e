package cmd

import (
	"linkedin-dashboard/internal/dashboard"
	"linkedin-dashboard/internal/linkedin"
	"strings"

	"github.com/spf13/cobra"
)

var (
	page         int
	reactionType string
)

func init() {
	postsCmd.Flags().IntVar(&page, "page", 1, "Page number.")
	commentsCmd.Flags().IntVar(&page, "page", 1, "Page number.")
	reactionsCmd.Flags().IntVar(&page, "page", 1, "Page number.")
	reactionsCmd.Flags().StringVar(&reactionType, "type", "ALL", "Reaction type to list: "+strings.Join(linkedin.ReactionTypes, ", ")+".")

	for _, c := range []*cobra.Command{
		profileCmd,
		postsCmd,
		commentsCmd,
		companyCmd,
		analyticsCmd,
		reactionsCmd,
	} {
		addOutputFlags(c)
		rootCmd.AddCommand(c)
	}
}

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Shows a member profile with its experience and education.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, dashboard.ProfileQuery(args[0]))
	},
}

var postsCmd = &cobra.Command{
	Use:   "posts <username> [--page n]",
	Short: "Lists the posts of a member.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, dashboard.PostsQuery(args[0], page))
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments <post-url> [--page n]",
	Short: "Lists the comments on a post.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, dashboard.CommentsQuery(args[0], page))
	},
}

var companyCmd = &cobra.Command{
	Use:   "company <identifier>",
	Short: "Shows a company page with its stats, headquarters and funding.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, dashboard.CompanyQuery(args[0]))
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics <post-url>",
	Short: "Summarizes the comments on a post: top commenters and reaction histogram.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, dashboard.AnalyticsQuery(args[0]))
	},
}

var reactionsCmd = &cobra.Command{
	Use:   "reactions <post-url> [--type LIKE] [--page n]",
	Short: "Lists the members who reacted to a post.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := linkedin.ParseReactionType(reactionType)
		if err != nil {
			return err
		}
		return runQuery(cmd, dashboard.ReactionsQuery(args[0], page, kind))
	},
}
