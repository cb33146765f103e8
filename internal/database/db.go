package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"northwind-ai-api/internal/logging"
	"northwind-ai-api/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnsupportedDriver indicates the DB_URL scheme is not one we can open.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

const (
	connectAttempts = 5
	retryDelay      = 2 * time.Second
)

// Open opens the database named by url without retrying.
func Open(ctx context.Context, url string, gormLogger logger.Interface) (*gorm.DB, error) {
	dialector, err := parseDialector(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying db: %w", err)
	}
	// SQLite allows one writer; an in-memory database also lives on a single connection.
	if dialector.Name() == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Connect opens the database, waiting for it to become reachable.
func Connect(ctx context.Context, url string, log zerolog.Logger) (*gorm.DB, error) {
	gormLogger := logging.NewGormLogger(log)

	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < connectAttempts; i++ {
		db, err = Open(ctx, url, gormLogger)
		if err == nil {
			break
		}
		if errors.Is(err, ErrUnsupportedDriver) {
			return nil, err
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("max", connectAttempts).Msg("database not ready, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", connectAttempts, err)
	}

	log.Info().Str("driver", db.Dialector.Name()).Msg("connected to database")
	return db, nil
}

// Migrate creates or updates the schema for every model the API reads.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.User{},
	)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func parseDialector(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite:///")), nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://")), nil
	case strings.HasPrefix(url, "postgresql://"), strings.HasPrefix(url, "postgres://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "mysql://"):
		return mysql.Open(strings.TrimPrefix(url, "mysql://")), nil
	case strings.Contains(url, "://"), strings.TrimSpace(url) == "":
		return nil, ErrUnsupportedDriver
	default:
		// bare go-sql-driver DSN, e.g. user:pass@tcp(host:3306)/northwind
		return mysql.Open(url), nil
	}
}
