package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	colonyID   string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colony",
		Short: "Colony CLI - run and inspect settler colonies",
		Long: `Colony CLI manages colonies, their settlers and assignments.
Commands run against the configured database directly. Due assignments are
resolved before every command that touches a colony.

Examples:
  colony create --user u-1 --server srv-1 --name "Hope"
  colony onboard generate
  colony onboard choose <settler-id>
  colony quests sync
  colony assignment start <assignment-id> --settler <settler-id>
  colony assignment explore --settler <settler-id> --x 1 --y 0
  colony show
  colony logs --csv`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.yaml (default: search ./, ./configs, /etc/colony)")
	rootCmd.PersistentFlags().StringVar(&colonyID, "colony", "",
		"Colony ID (default: the colony saved with 'colony use')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewColonyCreateCommand())
	rootCmd.AddCommand(NewColonyShowCommand())
	rootCmd.AddCommand(NewColonyLogsCommand())
	rootCmd.AddCommand(NewColonyUseCommand())
	rootCmd.AddCommand(NewColonyDropCommand())
	rootCmd.AddCommand(NewOnboardCommand())
	rootCmd.AddCommand(NewSettlerCommand())
	rootCmd.AddCommand(NewAssignmentCommand())
	rootCmd.AddCommand(NewQuestsCommand())
	rootCmd.AddCommand(NewSweepCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
