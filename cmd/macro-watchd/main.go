package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreschagin/macro-watch/internal/bootstrap"
	"github.com/dreschagin/macro-watch/internal/daemon"
	wsInfra "github.com/dreschagin/macro-watch/internal/infrastructure/notification/websocket"
	"github.com/dreschagin/macro-watch/pkg/config"
	"github.com/dreschagin/macro-watch/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	daemonCfg, err := daemon.LoadConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load daemon config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Getenv("LOG_LEVEL"))
	log.Info("Starting macro-watchd",
		"interval", daemonCfg.Interval.String(),
		"port", daemonCfg.Port,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uc, closeAll, err := bootstrap.BuildUseCase(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to build run pipeline", err)
		os.Exit(1)
	}
	defer closeAll()

	hub := wsInfra.NewHub(log)
	go hub.Run()

	runner := daemon.NewRunner(uc, hub, log, daemonCfg.Interval)
	go runner.Start(ctx)

	handler := daemon.NewHandler(runner, hub, log)

	server := &http.Server{
		Addr:         ":" + daemonCfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server started", "port", daemonCfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", err)
	}

	log.Info("macro-watchd stopped")
}
