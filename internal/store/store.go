package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the relational store shared by every request. It is safe for
// concurrent use; all cross-request state lives in the database.
type Store struct {
	db *gorm.DB
}

// New opens the database for driver/dsn and migrates the schema.
func New(ctx context.Context, driver, dsn string) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := configurePool(db, driver); err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.OAuthConnection{},
		&models.Session{},
		&models.OAuthState{},
		&models.UserStatusHistory{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Health checks the database connection
func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// DB returns the underlying GORM database connection (for transactions)
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateError maps GORM's not-found error onto ErrRecordNotFound.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}
