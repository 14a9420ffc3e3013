package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/pratikkkbhere/DataPilot/internal/config"
	"github.com/pratikkkbhere/DataPilot/ui"
)

func main() {
	// Load .env file if present (ignore error for production environments)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	server := ui.NewServer(cfg)
	if err := server.Run(context.Background()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
