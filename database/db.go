package database

import (
	"fmt"
	"log/slog"

	"github.com/perenos/yamdb-final/internal/config"
	"github.com/perenos/yamdb-final/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true, // surface gorm.ErrDuplicatedKey on unique violations
	}
	if cfg.IsProduction() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedSuperuser(db, cfg, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to seed superuser: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.Review{},
		&models.Comment{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("Database migrations applied successfully")
	return nil
}

// seedSuperuser creates the bootstrap admin account when ADMIN_USERNAME and
// ADMIN_EMAIL are configured and no such user exists yet.
func seedSuperuser(db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminUsername == "" || cfg.AdminEmail == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ?", cfg.AdminUsername).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.User{
		Username:    cfg.AdminUsername,
		Email:       cfg.AdminEmail,
		Role:        models.RoleAdmin,
		IsSuperuser: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded superuser account", "username", cfg.AdminUsername)
	return nil
}
