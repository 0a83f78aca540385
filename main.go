package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clearwater-cup/matchplay/app"
	"github.com/clearwater-cup/matchplay/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		log.Printf("Application stopped with error: %v", err)
	}

	if err := application.Close(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
