package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	colonyTypes "github.com/andrescamacho/colony-go/internal/application/colony/types"
	"github.com/andrescamacho/colony-go/internal/infrastructure/config"
)

// NewColonyCreateCommand creates the create subcommand
func NewColonyCreateCommand() *cobra.Command {
	var (
		userID     string
		serverID   string
		name       string
		serverType string
		serverName string
		step       int
		retries    int
		use        bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Found a colony on a server",
		Long: `Found a colony for a user on a server.

The colony is placed at the next free position of the server's spiral and
its homestead tile is explored. A user has at most one colony per server.

Examples:
  colony create --user u-1 --server srv-1 --name "Hope"
  colony create --user u-1 --server srv-1 --step 5 --use`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" || serverID == "" {
				handler, err := config.NewUserConfigHandler()
				if err == nil {
					if userCfg, err := handler.Load(); err == nil {
						if userID == "" {
							userID = userCfg.DefaultUserID
						}
						if serverID == "" {
							serverID = userCfg.DefaultServerID
						}
					}
				}
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			resp, err := send[*colonyTypes.CreateColonyResponse](s, &colonyTypes.CreateColonyCommand{
				UserID:         userID,
				ServerID:       serverID,
				Name:           name,
				ServerType:     serverType,
				ServerName:     serverName,
				StepMultiplier: step,
				MaxRetries:     retries,
			})
			if err != nil {
				return fmt.Errorf("failed to create colony: %w", err)
			}

			c := resp.Colony
			fmt.Printf("Colony %q created (%s)\n", c.Name, c.ID)
			fmt.Printf("  Homestead:  %s (spiral index %d, layer %d)\n",
				c.Placement.Location, c.Placement.Index, c.Placement.Layer)
			fmt.Printf("  Attempts:   %d\n", resp.Attempts)

			if use {
				if err := saveDefaultColony(c.ID); err != nil {
					return err
				}
				fmt.Println("  Saved as default colony")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owning user ID")
	cmd.Flags().StringVar(&serverID, "server", "", "Server ID")
	cmd.Flags().StringVar(&name, "name", "", "Colony name")
	cmd.Flags().StringVar(&serverType, "server-type", "", "Server type label")
	cmd.Flags().StringVar(&serverName, "server-name", "", "Server display name")
	cmd.Flags().IntVar(&step, "step", 0, "Spiral step multiplier (default from config)")
	cmd.Flags().IntVar(&retries, "retries", 0, "Placement attempts (default from config)")
	cmd.Flags().BoolVar(&use, "use", false, "Save the new colony as the default")

	return cmd
}

// NewColonyShowCommand creates the show subcommand
func NewColonyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show a colony overview",
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

			resp, err := send[*colonyTypes.GetColonyOverviewResponse](s, &colonyTypes.GetColonyOverviewQuery{ColonyID: id})
			if err != nil {
				return fmt.Errorf("failed to load colony: %w", err)
			}

			displayColonyOverview(resp)
			return nil
		},
	}
}

func displayColonyOverview(resp *colonyTypes.GetColonyOverviewResponse) {
	c := resp.Colony
	fmt.Printf("%s (%s)\n", c.Name, c.ID)
	fmt.Printf("  Server:     %s %s\n", c.ServerID, c.ServerName)
	fmt.Printf("  Homestead:  %s\n", c.Placement.Location)
	fmt.Printf("  Founded:    %s\n", humanize.Time(c.CreatedAt))
	fmt.Printf("  Settlers:   %d\n", len(resp.Settlers))

	fmt.Printf("\nInventory (%d/%d stacks, %s days of food):\n",
		resp.Summary.StackCount, c.MaxInventory, humanize.FtoaWithDigits(resp.Summary.DaysOfFood, 1))
	if len(resp.Inventory) == 0 {
		fmt.Println("  (empty)")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, it := range resp.Inventory {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", it.Icon, it.ItemID, humanize.Comma(int64(it.Quantity)), it.Type)
		}
		w.Flush()
	}

	if len(resp.Settlers) > 0 {
		fmt.Println("\nSettlers:")
		displaySettlers(resp.Settlers)
	}
}

// NewColonyLogsCommand creates the logs subcommand
func NewColonyLogsCommand() *cobra.Command {
	var (
		asCSV bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the colony activity feed",
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

			resp, err := send[*colonyTypes.GetColonyOverviewResponse](s, &colonyTypes.GetColonyOverviewQuery{ColonyID: id})
			if err != nil {
				return fmt.Errorf("failed to load colony: %w", err)
			}

			entries := resp.Colony.Logs
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			if asCSV {
				return writeLogsCSV(os.Stdout, entries)
			}

			if len(entries) == 0 {
				fmt.Println("No log entries")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tTYPE\tMESSAGE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", humanize.Time(e.Timestamp), e.Type, e.Message)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "Write CSV instead of a table")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only show the most recent N entries")

	return cmd
}

// NewColonyUseCommand creates the use subcommand
func NewColonyUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <colony-id>",
		Short: "Set the default colony",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := saveDefaultColony(args[0]); err != nil {
				return err
			}
			fmt.Printf("Default colony set to %s\n", args[0])
			return nil
		},
	}
}

// NewColonyDropCommand creates the drop subcommand
func NewColonyDropCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "drop <item-id>",
		Short: "Discard items from the colony inventory",
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

			resp, err := send[*colonyTypes.DropColonyItemsResponse](s, &colonyTypes.DropColonyItemsCommand{
				ColonyID: id,
				ItemID:   args[0],
				Quantity: quantity,
			})
			if err != nil {
				return fmt.Errorf("failed to drop items: %w", err)
			}

			fmt.Printf("Dropped %d %s (%d left)\n", resp.Dropped, args[0], resp.Remaining)
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "Units to drop")

	return cmd
}

func saveDefaultColony(id string) error {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return fmt.Errorf("failed to create user config handler: %w", err)
	}
	return handler.SetDefaultColony(id)
}
