package cli

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colony-go/internal/adapters/logging"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/colony-go/internal/infrastructure/config"
	"github.com/andrescamacho/colony-go/internal/infrastructure/database"
)

// session is one CLI invocation's application, bound to an open database
type session struct {
	ctx   context.Context
	app   *bootstrap.App
	close func()
}

// openSession loads configuration, connects and migrates the database and
// composes the application
func openSession() (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		logger.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	app, err := bootstrap.New(cfg, db)
	if err != nil {
		database.Close(db)
		logger.Close()
		return nil, err
	}

	return &session{
		ctx: common.WithLogger(context.Background(), logger),
		app: app,
		close: func() {
			database.Close(db)
			logger.Close()
		},
	}, nil
}

// send dispatches a request and asserts the response type
func send[T any](s *session, request common.Request) (T, error) {
	var zero T
	resp, err := s.app.Mediator.Send(s.ctx, request)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", resp)
	}
	return typed, nil
}

// resolveColonyID resolves the colony from flags or defaults
// Priority: --colony flag > user config default
func resolveColonyID() (string, error) {
	if colonyID != "" {
		return colonyID, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no colony specified and failed to load user config: %w", err)
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no colony specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultColonyID != "" {
		return userCfg.DefaultColonyID, nil
	}

	return "", fmt.Errorf("no colony specified: use --colony, or set a default with 'colony use <colony-id>'")
}
