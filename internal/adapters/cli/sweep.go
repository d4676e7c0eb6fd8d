package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	catalogLoader "github.com/andrescamacho/colony-go/internal/adapters/catalog"
)

// NewSweepCommand creates the sweep command with subcommands
func NewSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Resolve due assignments across all colonies",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run one sweep now",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			report, err := s.app.Sweep.RunOnce(s.ctx)
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}

			fmt.Printf("Swept %d colonies in %s: %d assignments completed, %d failures\n",
				report.Colonies, report.Duration, report.Completed, report.Failures)

			ids := make([]string, 0, len(report.Errors))
			for id := range report.Errors {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Printf("  %s: %v\n", id, report.Errors[id])
			}
			return nil
		},
	})

	return cmd
}

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect game-balance catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a catalog file (default: the built-in catalog)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			tables, err := catalogLoader.LoadFile(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return fmt.Errorf("catalog is invalid")
			}

			fmt.Printf("Catalog version %s is valid\n", tables.Version())
			fmt.Printf("  Quests:    %d\n", len(tables.Quests()))
			fmt.Printf("  Traits:    %d\n", len(tables.AllTraits()))
			fmt.Printf("  Terrains:  %d\n", len(tables.Terrains()))
			return nil
		},
	})

	return cmd
}
