package main

import (
	"context"
	"log"
	"os"

	"smartler/internal/audit"
	"smartler/internal/auth"
	"smartler/internal/catalog"
	"smartler/internal/db"
	"smartler/internal/importer"
	"smartler/internal/logger"
	"smartler/internal/router"
	"smartler/internal/storage"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	appLog := logger.FromEnv()

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	// Image uploads are optional: without R2 credentials the endpoint
	// returns 503 and everything else still works.
	var uploader catalog.ImageUploader
	if os.Getenv("R2_ENDPOINT") != "" {
		r2, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("Failed to configure R2 storage:", err)
		}
		uploader = r2
	} else {
		appLog.Warn("R2_ENDPOINT not set, image uploads disabled")
	}

	// ───────────────────────── WIRING ─────────────────────────
	store := catalog.NewPostgresStore(pgDB)
	recorder := audit.NewPostgresRecorder(pgDB)

	authService := auth.NewService(auth.NewPostgresStaffRepository(pgDB))
	catalogService := catalog.NewService(store, recorder, appLog)
	importService := importer.NewService(store, recorder, appLog)

	r := router.NewRouter(router.Handlers{
		Auth:    auth.NewHandler(authService),
		Catalog: catalog.NewHandler(catalogService, uploader),
		Import:  importer.NewHandler(importService),
		Audit:   audit.NewHandler(recorder),
	})

	// ───────────────────────── SERVE ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	appLog.Info("server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
