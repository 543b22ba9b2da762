package commands

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tagctl",
		Short: "Command line companion for the tag suggestion service",
		Long: `tagctl - talk to the tag suggestion service or try the selector offline.

Examples:
  # Suggest tags for a file using a local server
  tagctl suggest -f post.txt

  # See which tags the selector keeps for a set of scores
  tagctl select Paging=0.81 TLB=0.78 Deadlock=0.20 --max-tags 3

  # List the topics the service classifies against
  tagctl topics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newSelectCmd())
	rootCmd.AddCommand(newTopicsCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
