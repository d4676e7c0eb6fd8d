package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/colony-go/internal/adapters/logging"
	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/colony-go/internal/infrastructure/config"
	"github.com/andrescamacho/colony-go/internal/infrastructure/database"
	"github.com/andrescamacho/colony-go/internal/infrastructure/pidfile"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to config.yaml (default: search ./, ./configs, /etc/colony)")
	once := flag.Bool("once", false, "Run a single sweep and exit")
	flag.Parse()

	fmt.Println("Colony Sweep Daemon v0.1.0")
	fmt.Println("==========================")

	os.Exit(execute(*configPath, *once))
}

// execute runs the daemon and returns the process exit code. Deferred
// cleanup, including the PID file release, happens before main exits.
func execute(configPath string, once bool) int {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Printf("Failed to set up logging: %v", err)
		return 1
	}
	defer logger.Close()

	// Acquire PID file lock to prevent multiple instances
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Printf("Failed to acquire PID file lock: %v", err)
		return 1
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = common.WithLogger(ctx, logger)

	if err := run(ctx, cfg, once); err != nil {
		logger.Log("ERROR", "daemon stopped with error", map[string]interface{}{"error": err.Error()})
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, once bool) error {
	logger := common.LoggerFromContext(ctx)

	// 1. Setup database connection
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if !cfg.Database.SkipMigrations {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	logger.Log("INFO", "database ready", map[string]interface{}{"type": cfg.Database.Type})

	// 2. Metrics (optional)
	var (
		opts          []bootstrap.Option
		metricsServer *metrics.Server
		serverErrs    <-chan error
	)
	if cfg.Metrics.Enabled && !once {
		metrics.InitRegistry()

		commandMetrics := metrics.NewCommandMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		opts = append(opts, bootstrap.WithCommandMetrics(commandMetrics))

		sweepMetrics := metrics.NewSweepMetricsCollector()
		if err := sweepMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register sweep metrics: %w", err)
		}
		metrics.SetGlobalSweepCollector(sweepMetrics)

		metricsServer, err = metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
	}

	// 3. Compose the application
	app, err := bootstrap.New(cfg, db, opts...)
	if err != nil {
		return err
	}

	if once {
		report, err := app.Sweep.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Swept %d colonies: %d completed, %d failures\n", report.Colonies, report.Completed, report.Failures)
		return nil
	}

	if metricsServer != nil {
		simulationMetrics := metrics.NewSimulationMetricsCollector(app.Colonies)
		if err := simulationMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register simulation metrics: %w", err)
		}
		metrics.SetGlobalSimulationCollector(simulationMetrics)
		simulationMetrics.Start(ctx, cfg.Metrics.PollInterval)
		defer simulationMetrics.Stop()

		serverErrs = metricsServer.Start()
		logger.Log("INFO", "metrics endpoint listening", map[string]interface{}{
			"address": fmt.Sprintf("%s:%d%s", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path),
		})
	}

	// 4. Start the sweep loop
	app.Sweep.Start(ctx, cfg.Sweep.Interval)
	logger.Log("INFO", "sweep daemon started", map[string]interface{}{
		"interval":        cfg.Sweep.Interval.String(),
		"rate_per_second": cfg.Sweep.RatePerSecond,
	})

	var runErr error
	select {
	case <-ctx.Done():
		logger.Log("INFO", "shutdown signal received", nil)
	case err := <-serverErrs:
		runErr = fmt.Errorf("metrics server failed: %w", err)
	}

	// 5. Graceful shutdown
	app.Sweep.Stop()
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Log("WARNING", "metrics server shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}

	logger.Log("INFO", "sweep daemon stopped", nil)
	return runErr
}
