package main

import (
	"context"
	"log"
	"os"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/config"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/db"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := seed.Apply(ctx, client.Database(cfg.MongoDB)); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
