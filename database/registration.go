package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/eventhall/eventhall/database/models"
	"gorm.io/gorm"
)

func (c *Client) CreateRegistration(ctx context.Context, reg *models.Registration) error {
	if err := c.db.WithContext(ctx).Create(reg).Error; err != nil {
		if err != gorm.ErrDuplicatedKey {
			log.Error("failed to create registration", "error", err)
		}
		return err
	}
	return nil
}

func (c *Client) GetRegistration(ctx context.Context, userID, eventID uint) (*models.Registration, error) {
	var reg models.Registration
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&reg).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get registration", "error", err)
		}
		return nil, err
	}
	return &reg, nil
}

// DeleteRegistration removes the registration for the given pair.
// Returns gorm.ErrRecordNotFound if no such registration exists.
func (c *Client) DeleteRegistration(ctx context.Context, userID, eventID uint) error {
	res := c.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.Registration{})
	if res.Error != nil {
		log.Error("failed to delete registration", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (c *Client) CountRegistrationsForEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		log.Error("failed to count registrations for event", "error", err)
		return 0, err
	}
	return count, nil
}

func (c *Client) CountRegistrations(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Registration{}).Count(&count).Error; err != nil {
		log.Error("failed to count registrations", "error", err)
		return 0, err
	}
	return count, nil
}

// ListRegistrationsForUser returns the event ids the user is registered for.
func (c *Client) ListRegistrationsForUser(ctx context.Context, userID uint) ([]models.Registration, error) {
	var regs []models.Registration
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&regs).Error
	if err != nil {
		log.Error("failed to list registrations for user", "error", err)
		return nil, err
	}
	return regs, nil
}
