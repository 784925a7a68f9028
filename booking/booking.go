// Package booking implements the registration-capacity workflow:
// seat accounting, duplicate prevention and the event queries backing
// the web pages.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eventhall/eventhall/database"
	"github.com/eventhall/eventhall/database/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DateFormat is the textual format event dates are submitted in.
// It matches the value of an HTML datetime-local input.
const DateFormat = "2006-01-02T15:04"

// Service bundles the registration workflow on top of the store.
type Service struct {
	db *database.Client
}

// New creates a new booking service.
func New(db *database.Client) *Service {
	return &Service{db: db}
}

// AvailableSeats returns the remaining seats for an event, clamped at
// zero so callers never render a negative count.
func AvailableSeats(capacity int, registered int64) int {
	if seats := capacity - int(registered); seats > 0 {
		return seats
	}
	return 0
}

// RegisterForEvent registers a user for an event. The capacity check,
// duplicate check and insert run in a single transaction so two
// requests racing for the last seat cannot both commit.
func (s *Service) RegisterForEvent(ctx context.Context, userID, eventID uint) error {
	return s.db.Transaction(ctx, func(tx *database.Client) error {
		event, err := tx.GetEventByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load event: %w", err)
		}

		registered, err := tx.CountRegistrationsForEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to count registrations: %w", err)
		}
		if event.Capacity-int(registered) <= 0 {
			return ErrCapacityExceeded
		}

		if _, err := tx.GetRegistration(ctx, userID, eventID); err == nil {
			return ErrAlreadyRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check registration: %w", err)
		}

		err = tx.CreateRegistration(ctx, &models.Registration{
			UserID:  userID,
			EventID: eventID,
		})
		if err != nil {
			// The unique index backstops the duplicate check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("failed to create registration: %w", err)
		}

		log.Debug("user registered for event", "user_id", userID, "event_id", eventID)
		return nil
	})
}

// CancelRegistration removes the registration for (userID, eventID).
func (s *Service) CancelRegistration(ctx context.Context, userID, eventID uint) error {
	if err := s.db.DeleteRegistration(ctx, userID, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	log.Debug("registration cancelled", "user_id", userID, "event_id", eventID)
	return nil
}

// CreateEventForm holds the raw form values for event creation.
type CreateEventForm struct {
	Title       string
	Description string
	Date        string
	Location    string
	Capacity    string
}

// CreateEvent validates the form and persists a new event owned by
// organizerID. Parse failures and non-positive capacities are
// reported as ErrInvalidInput.
func (s *Service) CreateEvent(ctx context.Context, organizerID uint, form CreateEventForm) (*models.Event, error) {
	if form.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	date, err := time.Parse(DateFormat, form.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}
	capacity, err := strconv.Atoi(form.Capacity)
	if err != nil || capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", ErrInvalidInput)
	}

	event := &models.Event{
		Title:       form.Title,
		Description: form.Description,
		Date:        date,
		Location:    form.Location,
		Capacity:    capacity,
		OrganizerID: organizerID,
	}
	if err := s.db.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// ListEvents returns all events, optionally filtered by a
// case-insensitive substring match on the title.
func (s *Service) ListEvents(ctx context.Context, search string) ([]models.Event, error) {
	return s.db.ListEvents(ctx, search)
}

// EventDetail describes one event for the detail page.
type EventDetail struct {
	Event        *models.Event
	IsRegistered bool
}

// GetEventDetail returns an event and whether userID already holds a
// registration for it. userID zero means anonymous.
func (s *Service) GetEventDetail(ctx context.Context, eventID, userID uint) (*EventDetail, error) {
	event, err := s.db.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	detail := &EventDetail{Event: event}
	if userID != 0 {
		if _, err := s.db.GetRegistration(ctx, userID, eventID); err == nil {
			detail.IsRegistered = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check registration: %w", err)
		}
	}
	return detail, nil
}

// RegisteredEventIDs returns the set of event ids the user holds a
// registration for.
func (s *Service) RegisteredEventIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	regs, err := s.db.ListRegistrationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	ids := make(map[uint]bool, len(regs))
	for _, reg := range regs {
		ids[reg.EventID] = true
	}
	return ids, nil
}

// Summary holds the aggregate counts for the admin dashboard.
type Summary struct {
	TotalUsers         int64
	TotalEvents        int64
	TotalRegistrations int64
	Events             []models.Event
}

// AdminSummary returns the aggregate counts and the full event list.
func (s *Service) AdminSummary(ctx context.Context) (*Summary, error) {
	var summary Summary

	var g errgroup.Group
	g.Go(func() error {
		var err error
		summary.TotalUsers, err = s.db.CountUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.TotalEvents, err = s.db.CountEvents(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.TotalRegistrations, err = s.db.CountRegistrations(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Events, err = s.db.ListEvents(ctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect summary: %w", err)
	}

	return &summary, nil
}
