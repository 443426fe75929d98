// Package main provides the entry point for the bookshelf server application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookshelf-server/internal/di"
	"github.com/listenupapp/bookshelf-server/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// The container stops the HTTP server first, then closes the search index and database.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("Shutdown complete")
}
