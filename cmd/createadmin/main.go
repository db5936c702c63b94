// Command createadmin creates the admin account, or resets its password when the
// account already exists.
package main

import (
	"context"
	"log"

	"github.com/OWAISARSHED/LearnPak/config"
	"github.com/OWAISARSHED/LearnPak/internal/application/usecase"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/memory"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/repository"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/security"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}

	db, err := repository.Open(repository.DSN(cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort))
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	// no tokens are issued here, so an in-process token store is enough
	auth := usecase.NewAuthUseCase(repository.NewUserRepository(db), memory.NewStore().Tokens(),
		security.NewPasswordHasher(), security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret))

	created, err := auth.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	if created {
		log.Printf("Admin %s created", cfg.AdminEmail)
		return
	}
	log.Printf("Admin %s already exists, password reset", cfg.AdminEmail)
}
