package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"cayyap-notifier/internal/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := di.InitializeApp(ctx)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		log.Printf("application runtime error: %v", err)
	}
}
