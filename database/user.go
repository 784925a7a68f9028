package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/eventhall/eventhall/database/models"
	"gorm.io/gorm"
)

// CreateUser persists a new user. The unique index on username makes
// this fail with gorm.ErrDuplicatedKey when the name is taken.
func (c *Client) CreateUser(ctx context.Context, user *models.User) error {
	if err := c.db.WithContext(ctx).Create(user).Error; err != nil {
		if err != gorm.ErrDuplicatedKey {
			log.Error("failed to create user", "error", err)
		}
		return err
	}
	return nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by id", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// SetAdmin flips the admin flag for the given username.
func (c *Client) SetAdmin(ctx context.Context, username string, admin bool) error {
	res := c.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("is_admin", admin)
	if res.Error != nil {
		log.Error("failed to update admin flag", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		log.Error("failed to count users", "error", err)
		return 0, err
	}
	return count, nil
}
