// server/cmd/api/main.go
package main

import (
	"log"

	"scale-sync-api-server/config"
	"scale-sync-api-server/internal/api/routes"
	"scale-sync-api-server/internal/auth"
	"scale-sync-api-server/internal/cursor"
	"scale-sync-api-server/internal/database"
	"scale-sync-api-server/internal/sap"
	"scale-sync-api-server/internal/scale"
	"scale-sync-api-server/internal/socket"
	"scale-sync-api-server/internal/syncer"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// 1. Load .env (nếu có) và configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if err := auth.Init(cfg.JWT); err != nil {
		log.Fatalf("Could not init auth: %v", err)
	}

	// 2. Kết nối MongoDB (tùy chọn: cần cho cursor backend "mongo" và run history)
	var db *mongo.Database
	if cfg.Mongo.URI != "" {
		db, err = database.Connect(cfg.Mongo)
		if err != nil {
			log.Fatalf("Could not connect to MongoDB: %v", err)
		}
		if err := database.EnsureIndexes(db); err != nil {
			log.Fatalf("Could not ensure indexes: %v", err)
		}
	}

	// 3. Cursor store theo backend đã cấu hình
	var cursorStore cursor.Store
	switch cfg.Sync.CursorBackend {
	case "mongo":
		cursorStore = cursor.NewMongoStore(db)
	default:
		cursorStore = cursor.NewFileStore(cfg.Sync.CursorFile)
	}

	// 4. Upstream client, catalog, fetcher theo cursor strategy
	sapClient := sap.NewClient(cfg.SAP)
	catalog := sap.NewCatalog(sapClient, cfg.Sync.CatalogCacheSize)

	var strategy sap.CursorStrategy
	switch cfg.Sync.CursorMode {
	case "temporal":
		strategy = sap.NewTemporalStrategy()
	default:
		strategy = sap.OrdinalStrategy{}
	}

	fetcher := &sap.Fetcher{
		Client:   sapClient,
		Cursor:   cursorStore,
		Strategy: strategy,
	}

	// 5. Builder, dispatcher, orchestrator
	orchestrator := &syncer.Orchestrator{
		Fetcher:    fetcher,
		Builder:    &scale.Builder{Catalog: catalog},
		Dispatcher: scale.NewDispatcher(cfg.Scale),
		CursorMode: cfg.Sync.CursorMode,
	}

	// 6. Truyền tất cả các thành phần cần thiết vào router
	wsHub := socket.NewHub()
	router := routes.SetupRouter(orchestrator, catalog, cfg, db, wsHub)

	// 7. Start server
	log.Printf("Starting sync API server on port %s (%s cursor)", cfg.Server.Port, cfg.Sync.CursorMode)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
