package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	"github.com/noah-isme/coaching-center-api/internal/repository"
	"github.com/noah-isme/coaching-center-api/internal/service"
	"github.com/noah-isme/coaching-center-api/pkg/config"
	"github.com/noah-isme/coaching-center-api/pkg/database"
	"github.com/noah-isme/coaching-center-api/pkg/logger"
)

// seed creates the site admin account. Running it twice is harmless.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	email := flag.String("email", cfg.Seed.AdminEmail, "admin email")
	password := flag.String("password", cfg.Seed.AdminPassword, "admin password (min 6 characters)")
	name := flag.String("name", cfg.Seed.AdminName, "admin display name")
	flag.Parse()

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	authSvc := service.NewAuthService(repository.NewAdminRepository(db), nil, logr, service.AuthConfig{Secret: cfg.JWT.Secret})
	created, err := authSvc.EnsureAdmin(ctx, models.SeedAdminRequest{Email: *email, Password: *password, Name: *name})
	if err != nil {
		logr.Fatal("failed to seed admin", zap.Error(err))
	}
	if !created {
		logr.Info("admin already exists", zap.String("email", *email))
		return
	}
	logr.Info("admin created", zap.String("email", *email))
}
