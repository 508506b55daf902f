package database

import (
	"fmt"
	"time"

	"techos-service/internal/model"
	"techos-service/pkg/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL, configures the connection pool and migrates the
// schema. The handle is returned to the caller and injected into every store;
// there is no package-level database singleton.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	// Configure Postgres options
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.DB.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	// Run migrations
	start := time.Now()
	log.Info("Starting database migration...")

	if err := db.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.Client{},
		&model.Product{},
		&model.Brand{},
		&model.Technician{},
		&model.ServiceOrder{},
		&model.OrderPhoto{},
	); err != nil {
		log.Error("Database migration failed", zap.Error(err))
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	log.Info("Database migration completed successfully",
		zap.Duration("duration", time.Since(start)))

	return db, nil
}
