package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dreschagin/macro-watch/internal/bootstrap"
	"github.com/dreschagin/macro-watch/pkg/config"
	"github.com/dreschagin/macro-watch/pkg/logger"
)

// Exit codes mirror the aggregate tier so cron wrappers can alert on them.
const (
	exitOK       = 0
	exitStartup  = 1
	exitWarning  = 3
	exitCritical = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitStartup
	}

	log := logger.New(os.Getenv("LOG_LEVEL"))
	log.Info("Starting macro-watch run")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	uc, closeAll, err := bootstrap.BuildUseCase(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to build run pipeline", err)
		return exitStartup
	}
	defer closeAll()

	result, err := uc.Execute(ctx)
	if err != nil {
		log.Error("Monitoring run failed", err)
		return exitStartup
	}

	log.Info("Monitoring run finished",
		"run_id", result.Report.RunID,
		"overall", result.Report.Overall,
		"summary", result.Report.Summary,
		"artifact", result.ArtifactLocation,
	)

	switch result.Report.Overall {
	case "critical":
		return exitCritical
	case "warning":
		return exitWarning
	default:
		return exitOK
	}
}
