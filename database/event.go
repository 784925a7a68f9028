package database

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/eventhall/eventhall/database/models"
	"gorm.io/gorm"
)

func (c *Client) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := c.db.WithContext(ctx).Create(event).Error; err != nil {
		log.Error("failed to create event", "error", err)
		return err
	}
	return nil
}

// GetEventByID loads an event with its registrations preloaded.
func (c *Client) GetEventByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := c.db.WithContext(ctx).Preload("Registrations").First(&event, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get event by id", "error", err)
		}
		return nil, err
	}
	return &event, nil
}

// ListEvents returns all events, optionally filtered by a
// case-insensitive substring match on the title.
func (c *Client) ListEvents(ctx context.Context, search string) ([]models.Event, error) {
	q := c.db.WithContext(ctx).Preload("Registrations").Order("date ASC")
	if search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var events []models.Event
	if err := q.Find(&events).Error; err != nil {
		log.Error("failed to list events", "error", err)
		return nil, err
	}
	return events, nil
}

func (c *Client) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Event{}).Count(&count).Error; err != nil {
		log.Error("failed to count events", "error", err)
		return 0, err
	}
	return count, nil
}
