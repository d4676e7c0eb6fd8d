package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	colonyTypes "github.com/andrescamacho/colony-go/internal/application/colony/types"
	settlerTypes "github.com/andrescamacho/colony-go/internal/application/settler/types"
)

// NewSettlerCommand creates the settler command with subcommands
func NewSettlerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settler",
		Short: "Inspect and manage settlers",
	}

	cmd.AddCommand(newSettlerListCommand())
	cmd.AddCommand(newSettlerDropCommand())

	return cmd
}

func newSettlerListCommand() *cobra.Command {
	var candidates bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the colony's settlers",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveColonyID()
			if err != nil {
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			resp, err := send[*settlerTypes.ListSettlersResponse](s, &settlerTypes.ListSettlersQuery{
				ColonyID:          id,
				IncludeCandidates: candidates,
			})
			if err != nil {
				return fmt.Errorf("failed to list settlers: %w", err)
			}

			if len(resp.Settlers) == 0 {
				fmt.Println("No settlers")
				return nil
			}
			displaySettlers(resp.Settlers)
			return nil
		},
	}

	cmd.Flags().BoolVar(&candidates, "candidates", false, "Include onboarding candidates")

	return cmd
}

func newSettlerDropCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "drop <settler-id> <item-id>",
		Short: "Discard items a settler carries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			resp, err := send[*settlerTypes.DropSettlerItemsResponse](s, &settlerTypes.DropSettlerItemsCommand{
				SettlerID: args[0],
				ItemID:    args[1],
				Quantity:  quantity,
			})
			if err != nil {
				return fmt.Errorf("failed to drop items: %w", err)
			}

			fmt.Printf("%s dropped %d %s\n", resp.Settler.Name, resp.Dropped, args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "Units to drop")

	return cmd
}

// NewOnboardCommand creates the onboarding command with subcommands
func NewOnboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Pick a new colony's first settler",
		Long: `A new colony starts by choosing one of three generated candidates.

Examples:
  colony onboard generate
  colony onboard choose <settler-id>`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate (or show) the onboarding candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveColonyID()
			if err != nil {
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			resp, err := send[*colonyTypes.GenerateOnboardingSettlersResponse](s, &colonyTypes.GenerateOnboardingSettlersCommand{ColonyID: id})
			if err != nil {
				return fmt.Errorf("failed to generate candidates: %w", err)
			}

			displaySettlers(resp.Candidates)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "choose <settler-id>",
		Short: "Keep one candidate and discard the others",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveColonyID()
			if err != nil {
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			resp, err := send[*colonyTypes.ChooseOnboardingSettlerResponse](s, &colonyTypes.ChooseOnboardingSettlerCommand{
				ColonyID:  id,
				SettlerID: args[0],
			})
			if err != nil {
				return fmt.Errorf("failed to choose settler: %w", err)
			}

			fmt.Printf("%s joined the colony\n", resp.Settler.Name)
			return nil
		},
	})

	return cmd
}

func displaySettlers(settlers []settlerTypes.SettlerView) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tENERGY\tSTR/SPD/INT/RES\tTRAITS\tCARRYING")
	for _, st := range settlers {
		traits := make([]string, 0, len(st.Traits))
		for _, t := range st.Traits {
			traits = append(traits, t.Name)
		}
		carry := make(map[string]int, len(st.Carry))
		for _, c := range st.Carry {
			carry[c.ItemID] += c.Quantity
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d/%d/%d\t%s\t%s\n",
			st.ID,
			st.Name,
			st.Status,
			formatEnergy(st.Energy),
			st.Stats.Strength, st.Stats.Speed, st.Stats.Intelligence, st.Stats.Resilience,
			strings.Join(traits, ", "),
			formatItems(carry),
		)
	}
	w.Flush()
}
