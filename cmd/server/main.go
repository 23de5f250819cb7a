package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"projecthub/docs" // swagger docs
	"projecthub/internal/auth"
	"projecthub/internal/cache"
	"projecthub/internal/config"
	"projecthub/internal/db"
	"projecthub/internal/handler"
	"projecthub/internal/repository"
	"projecthub/internal/router"
	"projecthub/internal/service"
)

// @title Project Management API
// @version 1.0
// @description Projects, tasks and comments with role-based access control and JWT authentication.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)

	cfg, err := config.Load()
	if err != nil {
		e.Logger.Fatalf("config: %v", err)
	}
	if cfg.UsingDevSecret {
		e.Logger.Warn("JWT_SECRET not set, using the development secret")
	}
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		e.Logger.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		e.Logger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			e.Logger.Fatalf("reset database: %v", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		e.Logger.Fatalf("%v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		e.Logger.Warnf("redis unavailable at %s, refresh tokens and caching disabled: %v", cfg.RedisAddr, err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	memberRepo := repository.NewMemberRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		e.Logger.Fatalf("jwt: %v", err)
	}
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo, hasher, cacheClient)
	authService := service.NewAuthService(userRepo, hasher, jwtService, tokenStore)
	projectService := service.NewProjectService(projectRepo, memberRepo, userRepo)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, taskService)
	statsService := service.NewStatsService(projectRepo, taskRepo)

	resolver := auth.NewResolver(jwtService, tokenStore, userService)

	router.Register(e, cfg, resolver, router.Handlers{
		Auth:    handler.NewAuthHandler(userService, authService),
		User:    handler.NewUserHandler(userService),
		Project: handler.NewProjectHandler(projectService),
		Task:    handler.NewTaskHandler(taskService),
		Comment: handler.NewCommentHandler(commentService),
		Stats:   handler.NewStatsHandler(statsService),
	})

	go func() {
		addr := ":" + cfg.ServerPort
		e.Logger.Infof("swagger documentation available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Errorf("shutdown: %v", err)
	}
}
