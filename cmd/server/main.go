package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/foxxcyber/fridgelist/internal/config"
	"github.com/foxxcyber/fridgelist/internal/database"
	"github.com/foxxcyber/fridgelist/internal/handlers"
	"github.com/foxxcyber/fridgelist/internal/logging"
	"github.com/foxxcyber/fridgelist/internal/services"
	"github.com/foxxcyber/fridgelist/internal/storage"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	cfg := config.Load()

	zlog, cleanup, err := logging.New(cfg.Environment, cfg.Debug, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer cleanup()

	backend, closeBackend, err := openBackend(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open storage backend", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer closeBackend()

	// Receipt scanning is optional
	var scanner *services.ReceiptScanner
	if cfg.OCREnabled {
		ocrService, err := services.NewOCRService(cfg.OCRLanguage)
		if err != nil {
			zlog.Warn("Failed to initialize OCR service, receipt scanning disabled", zap.Error(err))
		} else {
			defer ocrService.Close()
			scanner = services.NewReceiptScanner(ocrService, services.NewReceiptParser())
			zlog.Info("Receipt scanning service initialized", zap.String("language", cfg.OCRLanguage))
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    int(cfg.MaxImageBytes)*2 + 1024*1024,
		ReadTimeout:  30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	h := handlers.New(cfg, storage.New(backend), scanner, zlog)
	handlers.RegisterRoutes(app, h, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zlog.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("Shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("Server starting", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageBackend))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("Server stopped", zap.Error(err))
	}
}

// openBackend connects the configured record backend
func openBackend(cfg *config.Config, zlog *zap.Logger) (storage.Backend, func(), error) {
	switch cfg.StorageBackend {
	case "memory":
		zlog.Warn("Using in-memory storage, records are lost on restart")
		return storage.NewMemoryBackend(), func() {}, nil

	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL, zlog)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(context.Background(), db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return db, db.Close, nil

	case "s3":
		if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			return nil, nil, fmt.Errorf("S3 credentials not configured")
		}
		storageService, err := services.NewStorageService(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := storageService.EnsureBucket(ctx); err != nil {
			return nil, nil, err
		}
		return storageService, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
