package main

import (
	"context"
	"net/http"

	_ "mybudget/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"mybudget/internal/auth"
	"mybudget/internal/cache"
	"mybudget/internal/config"
	"mybudget/internal/db"
	"mybudget/internal/handler"
	"mybudget/internal/logger"
	"mybudget/internal/model"
	"mybudget/internal/repository"
	"mybudget/internal/router"
	"mybudget/internal/service"
)

// @title My Budget API
// @version 1.0
// @description Personal finance tracking backend with JWT authentication, categories, transactions and spend reports.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.BlocklistedToken{},
		&model.Category{},
		&model.Transaction{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	blocklistRepo := repository.NewBlocklistRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	transactionRepo := repository.NewTransactionRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)

	// Token codec: the signing key is fixed configuration, never rotated
	// at runtime.
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Services
	authService := service.NewAuthService(userRepo, blocklistRepo, codec, cfg.RefreshRotation)
	userService := service.NewUserService(userRepo, cacheClient)
	adminService := service.NewAdminService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	reportService := service.NewReportService(reportRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	reportHandler := handler.NewReportHandler(reportService)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())

	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		userHandler,
		adminHandler,
		categoryHandler,
		transactionHandler,
		reportHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("server starting")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
