package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	assignmentTypes "github.com/andrescamacho/colony-go/internal/application/assignment/types"
)

// NewAssignmentCommand creates the assignment command with subcommands
func NewAssignmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignment",
		Aliases: []string{"a"},
		Short:   "Start and track settler assignments",
		Long: `Assignments are timed tasks a settler works on: quests, exploration,
resting and crafting. Finished assignments are resolved automatically the
next time the colony is touched, or by the sweep daemon.

Examples:
  colony assignment list --state in-progress
  colony assignment start <assignment-id> --settler <settler-id>
  colony assignment explore --settler <settler-id> --x 2 --y -1
  colony assignment rest --settler <settler-id> --duration 2h
  colony assignment craft plank --settler <settler-id>
  colony assignment inform <assignment-id>`,
	}

	cmd.AddCommand(newAssignmentListCommand())
	cmd.AddCommand(newAssignmentStartCommand())
	cmd.AddCommand(newAssignmentExploreCommand())
	cmd.AddCommand(newAssignmentRestCommand())
	cmd.AddCommand(newAssignmentCraftCommand())
	cmd.AddCommand(newAssignmentInformCommand())

	return cmd
}

func newAssignmentListCommand() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the colony's assignments",
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

			resp, err := send[*assignmentTypes.ListAssignmentsResponse](s, &assignmentTypes.ListAssignmentsQuery{
				ColonyID: id,
				State:    state,
			})
			if err != nil {
				return fmt.Errorf("failed to list assignments: %w", err)
			}

			if len(resp.Assignments) == 0 {
				fmt.Println("No assignments")
				return nil
			}
			displayAssignments(resp.Assignments, s.app.Clock.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "Filter by state (available, in-progress, completed, informed)")

	return cmd
}

func newAssignmentStartCommand() *cobra.Command {
	var settlerID string

	cmd := &cobra.Command{
		Use:   "start <assignment-id>",
		Short: "Start an available quest or cleaning task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(&assignmentTypes.StartAssignmentCommand{
				AssignmentID: args[0],
				SettlerID:    settlerID,
			})
		},
	}

	cmd.Flags().StringVar(&settlerID, "settler", "", "Settler to assign [required]")
	cmd.MarkFlagRequired("settler")

	return cmd
}

func newAssignmentExploreCommand() *cobra.Command {
	var (
		settlerID string
		x, y      int
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Send a settler to explore a map tile",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveColonyID()
			if err != nil {
				return err
			}
			return runStart(&assignmentTypes.StartExplorationCommand{
				ColonyID:  id,
				SettlerID: settlerID,
				X:         x,
				Y:         y,
			})
		},
	}

	cmd.Flags().StringVar(&settlerID, "settler", "", "Settler to send [required]")
	cmd.Flags().IntVar(&x, "x", 0, "Tile X coordinate")
	cmd.Flags().IntVar(&y, "y", 0, "Tile Y coordinate")
	cmd.MarkFlagRequired("settler")

	return cmd
}

func newAssignmentRestCommand() *cobra.Command {
	var (
		settlerID string
		duration  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "rest",
		Short: "Let a settler rest and recover energy",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveColonyID()
			if err != nil {
				return err
			}
			return runStart(&assignmentTypes.StartRestingCommand{
				ColonyID:  id,
				SettlerID: settlerID,
				Duration:  duration,
			})
		},
	}

	cmd.Flags().StringVar(&settlerID, "settler", "", "Settler to rest [required]")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Rest duration (default 1h)")
	cmd.MarkFlagRequired("settler")

	return cmd
}

func newAssignmentCraftCommand() *cobra.Command {
	var settlerID string

	cmd := &cobra.Command{
		Use:   "craft <recipe-id>",
		Short: "Craft a recipe from colony materials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveColonyID()
			if err != nil {
				return err
			}
			return runStart(&assignmentTypes.StartCraftingCommand{
				ColonyID:  id,
				SettlerID: settlerID,
				RecipeID:  args[0],
			})
		},
	}

	cmd.Flags().StringVar(&settlerID, "settler", "", "Settler to craft [required]")
	cmd.MarkFlagRequired("settler")

	return cmd
}

func newAssignmentInformCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inform <assignment-id>",
		Short: "Acknowledge a completed assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			resp, err := send[*assignmentTypes.InformAssignmentResponse](s, &assignmentTypes.InformAssignmentCommand{AssignmentID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to inform assignment: %w", err)
			}

			fmt.Printf("Assignment %s is now %s\n", resp.ID, resp.State)
			return nil
		},
	}
}

// runStart sends any of the start commands and prints the started assignment
func runStart(command interface{}) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	resp, err := send[*assignmentTypes.StartAssignmentResponse](s, command)
	if err != nil {
		return fmt.Errorf("failed to start assignment: %w", err)
	}

	a := resp.Assignment
	fmt.Printf("Started %q (%s)\n", a.Name, a.ID)
	fmt.Printf("  Settler:   %s\n", a.SettlerID)
	fmt.Printf("  Duration:  %s\n", formatDuration(a.DurationMs))
	fmt.Printf("  Done:      %s\n", formatWhen(a.CompletedAt, s.app.Clock.Now()))
	fmt.Printf("  Rewards:   %s\n", formatItems(a.PlannedRewards))
	return nil
}

// NewQuestsCommand creates the quests command with subcommands
func NewQuestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Manage the colony's quest board",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Add catalog quests the colony does not have yet",
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

			resp, err := send[*assignmentTypes.SyncQuestAssignmentsResponse](s, &assignmentTypes.SyncQuestAssignmentsCommand{ColonyID: id})
			if err != nil {
				return fmt.Errorf("failed to sync quests: %w", err)
			}

			if len(resp.Created) == 0 {
				fmt.Println("Quest board is up to date")
				return nil
			}
			fmt.Printf("Added %d quests\n", len(resp.Created))
			displayAssignments(resp.Created, s.app.Clock.Now())
			return nil
		},
	})

	return cmd
}

func displayAssignments(assignments []assignmentTypes.AssignmentView, now time.Time) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATE\tSETTLER\tDURATION\tDONE\tREWARDS")
	for _, a := range assignments {
		settlerID := a.SettlerID
		if settlerID == "" {
			settlerID = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			a.Name,
			a.Type,
			a.State,
			settlerID,
			formatDuration(a.DurationMs),
			formatWhen(a.CompletedAt, now),
			formatItems(a.PlannedRewards),
		)
	}
	w.Flush()
}
