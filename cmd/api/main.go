package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-price-scanner/internal/config"
	"go-price-scanner/internal/repository"
	"go-price-scanner/internal/router"
	"go-price-scanner/internal/service"
	"go-price-scanner/pkg/database"
	"go-price-scanner/pkg/jwt"
	pkglogger "go-price-scanner/pkg/logger"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := pkglogger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.Session.DevSecret {
		zlog.Warn("SESSION_SECRET not set, using the development secret")
	}

	// 2. Setup Database
	gormLevel := gormlogger.Warn
	if cfg.Logging.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := database.Connect(cfg.Database, zap.NewStdLog(zlog.Named("gorm")), gormLevel)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}
	zlog.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// 3. Seed admin user
	if cfg.Admin.Email != "" {
		authService := service.NewAuthService(repository.NewUserRepo(db), jwt.NewSigner(cfg.Session.Secret, cfg.Session.TTL))
		created, err := authService.SeedAdmin(cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			zlog.Fatal("Failed to seed admin user", zap.Error(err))
		}
		if created {
			zlog.Info("Admin user created", zap.String("email", cfg.Admin.Email))
		}
	}

	// 4. Setup Fiber
	app := router.New(router.Deps{DB: db, Log: zlog, Config: cfg})

	// 5. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zlog.Panic("Server stopped", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}
