package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "teller",
		Short:   "Cash terminal simulator",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCashCommand())
	rootCmd.AddCommand(newBalanceCommand())
	rootCmd.AddCommand(newWithdrawCommand())
	rootCmd.AddCommand(newLogCommand())

	return rootCmd
}
