package main

import (
	"context"
	"log"
	"os"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/config"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/db"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := migrate.Apply(client, cfg.MongoDB); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Println("migrations applied")
}
