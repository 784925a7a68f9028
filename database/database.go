package database

import (
	"context"
	"fmt"

	"github.com/eventhall/eventhall/database/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
// path may be ":memory:" for an in-memory database.
func New(path string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// Map unique constraint violations to gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Transaction runs fn inside a single database transaction. The
// client passed to fn must not be used outside of it.
func (c *Client) Transaction(ctx context.Context, fn func(tx *Client) error) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Client{db: tx})
	})
}

// Reset deletes all events and registrations, and unless keepUsers is
// set, all users.
func (c *Client) Reset(ctx context.Context, keepUsers bool) error {
	db := c.db.WithContext(ctx)
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Registration{}).Error; err != nil {
		return fmt.Errorf("failed to delete registrations: %w", err)
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Event{}).Error; err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	if !keepUsers {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("failed to delete users: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
