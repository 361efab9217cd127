package main

import (
	"context"
	"log"

	"site-gallery-be/internal/bootstrap"
	"site-gallery-be/internal/config"
	"site-gallery-be/internal/server"
	"site-gallery-be/internal/tracer"
	"site-gallery-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Load Configuration & Tracer
	cfg := config.Load()
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled)
	defer shutdownTracer(context.Background())

	// 1. Initialize Database (optional, in-memory metadata without it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment != "production")
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, gormDB, cfg)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
	container.FormService.Wait()
}
