package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caseguard/caseguard/internal/infrastructure/database"
	"github.com/caseguard/caseguard/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/caseguard/caseguard/internal/interfaces/http"
	"github.com/caseguard/caseguard/internal/shared/constants"
)

// The worker runs only the SLA breach sweep, for deployments that start the
// API with --no-scheduler.
func main() {
	env := constants.EnvDevelopment
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	env = bootstrap.ResolveEnv(env)

	cfg, log, err := bootstrap.InitWithDatabase(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start worker: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	log.Infow("starting breach sweep worker",
		"environment", env,
		"interval", cfg.Workflow.SweepInterval)

	if cfg.Workflow.SweepInterval <= 0 {
		log.Fatalw("workflow.sweep_interval must be positive for the worker")
	}

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		log.Fatalw("failed to build container", "error", err)
	}
	if err := container.StartScheduler(); err != nil {
		log.Fatalw("failed to start scheduler", "error", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infow("received signal, shutting down", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	container.Shutdown(ctx)

	log.Infow("breach sweep worker stopped")
}
