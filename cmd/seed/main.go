package main

import (
	"context"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/labstack/gommon/log"

	"projecthub/internal/auth"
	"projecthub/internal/config"
	"projecthub/internal/db"
	"projecthub/internal/model"
	"projecthub/internal/repository"
	"projecthub/internal/service"
)

// seedConfig names the initial administrator.
type seedConfig struct {
	Email    string `env:"SEED_ADMIN_EMAIL,required"`
	Username string `env:"SEED_ADMIN_USERNAME" envDefault:"admin"`
	Password string `env:"SEED_ADMIN_PASSWORD,required"`
}

func main() {
	log.SetLevel(log.INFO)
	log.Info("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	var seed seedConfig
	if err := env.Parse(&seed); err != nil {
		log.Fatalf("seed config: %v", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations completed")

	users := repository.NewUserRepository(gormDB)
	userService := service.NewUserService(users, auth.NewPasswordHasher(cfg.BcryptCost), nil)

	created, err := seedAdmin(context.Background(), users, userService, seed)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if created {
		log.Infof("Admin %s created", seed.Email)
	} else {
		log.Infof("Admin %s already exists, nothing to do", seed.Email)
	}
}

// seedAdmin creates the administrator unless a user with that email exists.
func seedAdmin(ctx context.Context, users repository.UserRepository, userService service.UserService, seed seedConfig) (bool, error) {
	existing, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(seed.Email)))
	if err == nil && existing != nil {
		return false, nil
	}
	if err != nil && !repository.IsNotFound(err) {
		return false, err
	}

	_, err = userService.Register(ctx, service.RegisterInput{
		Username: seed.Username,
		Email:    seed.Email,
		Password: seed.Password,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
