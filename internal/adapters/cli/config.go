package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colony-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage colony configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (COLONY_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default colony and identity) are stored in ~/.colony/config.json

Examples:
  colony config show
  colony config set-identity --user u-1 --server srv-1`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetIdentityCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("Colony Configuration")
			fmt.Println("====================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Default Colony:   %s\n", orNotSet(userCfg.DefaultColonyID))
			fmt.Printf("  Default User:     %s\n", orNotSet(userCfg.DefaultUserID))
			fmt.Printf("  Default Server:   %s\n", orNotSet(userCfg.DefaultServerID))

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Printf("  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}

			fmt.Println("\nGame:")
			fmt.Printf("  Catalog:          %s\n", orDefault(cfg.Game.CatalogPath, "(built-in)"))
			fmt.Printf("  Step Multiplier:  %d\n", cfg.Game.StepMultiplier)
			fmt.Printf("  Placement Tries:  %d\n", cfg.Game.MaxPlacementRetries)
			fmt.Printf("  Seed:             %d\n", cfg.Game.Seed)

			fmt.Println("\nSweep:")
			fmt.Printf("  Interval:         %s\n", cfg.Sweep.Interval)
			fmt.Printf("  Rate:             %.1f colonies/s (burst: %d)\n", cfg.Sweep.RatePerSecond, cfg.Sweep.Burst)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}
			return nil
		},
	}
}

func newConfigSetIdentityCommand() *cobra.Command {
	var userID, serverID string

	cmd := &cobra.Command{
		Use:   "set-identity",
		Short: "Set the user and server used by 'colony create'",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetDefaultIdentity(userID, serverID); err != nil {
				return err
			}
			fmt.Printf("Default identity set to user %s on server %s\n", userID, serverID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID [required]")
	cmd.Flags().StringVar(&serverID, "server", "", "Server ID [required]")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("server")

	return cmd
}

// maskPassword hides the password in a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

func orNotSet(v string) string {
	return orDefault(v, "(not set)")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
