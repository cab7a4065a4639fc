package main

import (
	"flag"
	"log"
	"os"

	"go-price-scanner/internal/config"
	"go-price-scanner/internal/repository"
	"go-price-scanner/internal/service"
	"go-price-scanner/pkg/database"
	"go-price-scanner/pkg/jwt"

	gormlogger "gorm.io/gorm/logger"
)

func main() {
	email := flag.String("email", "", "email of the account to reset")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, log.New(os.Stderr, "", log.LstdFlags), gormlogger.Warn)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 3. Reset, which also ends every open session of the user
	authService := service.NewAuthService(repository.NewUserRepo(db), jwt.NewSigner(cfg.Session.Secret, cfg.Session.TTL))
	if err := authService.ResetPassword(*email, *password); err != nil {
		log.Fatalf("❌ Failed to reset password for %s: %s", *email, service.Message(err))
	}

	log.Printf("✅ Success! Password for %s has been reset", *email)
}
