package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rappu-backend/config"
	"rappu-backend/controllers"
	"rappu-backend/routes"
	"rappu-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg := config.Load()

	// Storage driver: local filesystem by default, MySQL blob table
	// when STORAGE_DRIVER=db.
	var store services.Storage
	switch cfg.StorageDriver {
	case "db":
		db, err := config.ConnectDatabase()
		if err != nil {
			log.Fatalf("❌ Database connect failed: %v", err)
		}
		log.Println("✅ Database connection established, using db storage driver")
		store = services.NewDBStorage(db, cfg.PublicBaseURL)
	default:
		store = services.NewLocalStorage(cfg.DataDir, cfg.PublicBaseURL)
		log.Printf("✅ Using local storage driver (data dir %s)", cfg.DataDir)
	}

	// Initialize controllers
	screenController := controllers.NewScreenController(store)
	rssController := controllers.NewRSSController()
	logoController := controllers.NewLogoController(store, cfg.MaxUploadBytes)

	// Build router
	router := routes.SetupRouter(cfg, screenController, rssController, logoController)

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Rappu listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
