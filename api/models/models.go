// Package models holds the view models rendered by the templates.
package models

import (
	"time"

	"github.com/eventhall/eventhall/booking"
	dbmodels "github.com/eventhall/eventhall/database/models"
	"github.com/mergestat/timediff"
	"github.com/samber/lo"
)

// EventView is an event prepared for display.
type EventView struct {
	ID             uint
	Title          string
	Description    string
	Location       string
	Date           time.Time
	DateLabel      string
	Starts         string // relative, e.g. "in 3 days"
	Capacity       int
	AvailableSeats int
	IsRegistered   bool
}

// ToEventView converts a database event. registered may be nil for
// anonymous viewers.
func ToEventView(event dbmodels.Event, registered map[uint]bool) EventView {
	return EventView{
		ID:             event.ID,
		Title:          event.Title,
		Description:    event.Description,
		Location:       event.Location,
		Date:           event.Date,
		DateLabel:      event.Date.Format("Mon, 02 Jan 2006 15:04"),
		Starts:         timediff.TimeDiff(event.Date),
		Capacity:       event.Capacity,
		AvailableSeats: booking.AvailableSeats(event.Capacity, int64(len(event.Registrations))),
		IsRegistered:   registered[event.ID],
	}
}

// ToEventViews converts a slice of database events.
func ToEventViews(events []dbmodels.Event, registered map[uint]bool) []EventView {
	return lo.Map(events, func(event dbmodels.Event, _ int) EventView {
		return ToEventView(event, registered)
	})
}
