package main

import (
	"context"
	"flag"
	"log"

	"site-gallery-be/internal/bootstrap"
	"site-gallery-be/internal/catalog"
	"site-gallery-be/internal/config"
	"site-gallery-be/internal/pkg/logger"
	"site-gallery-be/internal/repository/unitofwork"
	"site-gallery-be/internal/service"
	"site-gallery-be/pkg/database"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "list superseded images without deleting them")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}
	if cfg.Gallery.OwnerId == "" {
		log.Fatal("Error: GALLERY_OWNER_ID or GALLERY_ADMIN_USER_ID must be set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	store, _, err := bootstrap.NewObjectStore(ctx, cfg)
	if err != nil {
		log.Fatal("Error: Failed to open object storage:", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	pruner := service.NewPruneService(catalog.Default(), unitofwork.NewRepositoryFactory(db), store, sysLogger, cfg.Gallery.OwnerId)
	results, err := pruner.Prune(ctx, *dryRun)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	total := 0
	for _, res := range results {
		for _, p := range res.Paths {
			log.Printf("[%s] %s", res.SiteSlug, p)
		}
		total += len(res.Paths)
	}
	if *dryRun {
		log.Printf("Dry run: %d superseded images found", total)
		return
	}
	log.Printf("Done: %d superseded images pruned", total)
}
