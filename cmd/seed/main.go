// Command seed bootstraps a fresh deployment with an initial superuser and
// a default category set for that user.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mybudget/internal/auth"
	"mybudget/internal/config"
	"mybudget/internal/db"
	"mybudget/internal/logger"
	"mybudget/internal/model"
	"mybudget/internal/repository"
)

var defaultCategories = []struct {
	name   string
	budget int64
	color  string
}{
	{"Groceries", 400, "#4caf50"},
	{"Rent", 1200, "#2196f3"},
	{"Transport", 150, "#ff9800"},
	{"Entertainment", 100, "#9c27b0"},
	{"Utilities", 200, "#607d8b"},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	username := envOr("SEED_ADMIN_USERNAME", "admin")
	email := envOr("SEED_ADMIN_EMAIL", "admin@example.com")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD is required")
	}
	if !auth.MeetsPolicy(password) {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD does not meet the password policy")
	}

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

	users := repository.NewUserRepository(gormDB)
	categories := repository.NewCategoryRepository(gormDB)

	admin, err := users.FindByUsername(ctx, username, true)
	if err == nil {
		log.Info().Str("username", admin.Username).Msg("superuser already present, nothing to do")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("lookup superuser")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	admin = &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  true,
		Role:         model.RoleAdministrator,
		DateJoined:   time.Now().UTC(),
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("create superuser")
	}

	for _, dc := range defaultCategories {
		category := &model.Category{
			UserID:         admin.ID,
			Name:           dc.name,
			BudgetedAmount: decimal.NewFromInt(dc.budget),
			ColorCode:      dc.color,
			IsActive:       true,
		}
		if err := categories.Create(ctx, category); err != nil {
			log.Fatal().Err(err).Str("category", dc.name).Msg("create category")
		}
	}

	log.Info().Str("username", username).Int("categories", len(defaultCategories)).Msg("seed complete")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
