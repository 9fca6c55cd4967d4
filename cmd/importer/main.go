package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/config"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/db"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/importer"
	sweetrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/sweet"
	catalogsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/catalog"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	catalog := catalogsvc.New(sweetrepo.NewMongo(client.Database(cfg.MongoDB), logger), nil, logger)
	imp := importer.NewCSVImporter(f, catalog)

	start := time.Now()
	imported, skipped, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d sweets (%d duplicates skipped) in %s\n", imported, skipped, time.Since(start).Truncate(time.Millisecond))
}
