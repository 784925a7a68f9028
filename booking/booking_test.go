package booking

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/eventhall/eventhall/database"
	"github.com/eventhall/eventhall/database/models"
	"github.com/stretchr/testify/suite"
)

type BookingTestSuite struct {
	suite.Suite
	db  *database.Client
	svc *Service
	ctx context.Context
}

func (s *BookingTestSuite) SetupTest() {
	db, err := database.New(filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)
	s.db = db
	s.svc = New(db)
	s.ctx = context.Background()
}

func (s *BookingTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *BookingTestSuite) createUser(username string) *models.User {
	user := &models.User{Username: username, Password: "x"}
	s.Require().NoError(s.db.CreateUser(s.ctx, user))
	return user
}

func (s *BookingTestSuite) createEvent(title string, capacity int) *models.Event {
	event := &models.Event{
		Title:       title,
		Date:        time.Now().Add(48 * time.Hour),
		Location:    "Town hall",
		Capacity:    capacity,
		OrganizerID: 1,
	}
	s.Require().NoError(s.db.CreateEvent(s.ctx, event))
	return event
}

func (s *BookingTestSuite) TestAvailableSeatsNeverNegative() {
	s.Equal(3, AvailableSeats(5, 2))
	s.Equal(0, AvailableSeats(5, 5))
	s.Equal(0, AvailableSeats(5, 7))
}

func (s *BookingTestSuite) TestRegisterForUnknownEvent() {
	user := s.createUser("alice")
	err := s.svc.RegisterForEvent(s.ctx, user.ID, 4242)
	s.ErrorIs(err, ErrNotFound)
}

func (s *BookingTestSuite) TestRegisterTwiceFails() {
	user := s.createUser("alice")
	event := s.createEvent("Gophers meetup", 10)

	s.NoError(s.svc.RegisterForEvent(s.ctx, user.ID, event.ID))
	err := s.svc.RegisterForEvent(s.ctx, user.ID, event.ID)
	s.ErrorIs(err, ErrAlreadyRegistered)

	count, err := s.db.CountRegistrationsForEvent(s.ctx, event.ID)
	s.NoError(err)
	s.EqualValues(1, count)
}

func (s *BookingTestSuite) TestRegisterWhenFullCreatesNoRow() {
	event := s.createEvent("Tiny venue", 1)
	a := s.createUser("alice")
	b := s.createUser("bob")

	s.NoError(s.svc.RegisterForEvent(s.ctx, a.ID, event.ID))
	err := s.svc.RegisterForEvent(s.ctx, b.ID, event.ID)
	s.ErrorIs(err, ErrCapacityExceeded)

	count, err := s.db.CountRegistrationsForEvent(s.ctx, event.ID)
	s.NoError(err)
	s.EqualValues(1, count)
}

// Capacity=1: A registers, B is rejected, A cancels, B gets the seat.
func (s *BookingTestSuite) TestSeatFreedByCancellation() {
	event := s.createEvent("Last seat", 1)
	a := s.createUser("alice")
	b := s.createUser("bob")

	s.NoError(s.svc.RegisterForEvent(s.ctx, a.ID, event.ID))

	detail, err := s.svc.GetEventDetail(s.ctx, event.ID, a.ID)
	s.Require().NoError(err)
	s.True(detail.IsRegistered)
	s.Equal(0, AvailableSeats(detail.Event.Capacity, int64(len(detail.Event.Registrations))))

	s.ErrorIs(s.svc.RegisterForEvent(s.ctx, b.ID, event.ID), ErrCapacityExceeded)

	s.NoError(s.svc.CancelRegistration(s.ctx, a.ID, event.ID))

	detail, err = s.svc.GetEventDetail(s.ctx, event.ID, a.ID)
	s.Require().NoError(err)
	s.False(detail.IsRegistered)
	s.Equal(1, AvailableSeats(detail.Event.Capacity, int64(len(detail.Event.Registrations))))

	s.NoError(s.svc.RegisterForEvent(s.ctx, b.ID, event.ID))
}

func (s *BookingTestSuite) TestCancelMissingRegistration() {
	user := s.createUser("alice")
	event := s.createEvent("Never joined", 5)

	err := s.svc.CancelRegistration(s.ctx, user.ID, event.ID)
	s.ErrorIs(err, ErrNotFound)
}

// Cancel-then-register cycles never accumulate duplicate rows.
func (s *BookingTestSuite) TestCancelRegisterCycle() {
	user := s.createUser("alice")
	event := s.createEvent("Cycling", 5)

	for i := 0; i < 3; i++ {
		s.NoError(s.svc.RegisterForEvent(s.ctx, user.ID, event.ID))
		s.NoError(s.svc.CancelRegistration(s.ctx, user.ID, event.ID))
	}
	s.NoError(s.svc.RegisterForEvent(s.ctx, user.ID, event.ID))

	count, err := s.db.CountRegistrationsForEvent(s.ctx, event.ID)
	s.NoError(err)
	s.EqualValues(1, count)
}

func (s *BookingTestSuite) TestCreateEventValidation() {
	organizer := s.createUser("organizer")

	valid := CreateEventForm{
		Title:    "Launch party",
		Date:     "2026-09-01T19:30",
		Location: "Rooftop",
		Capacity: "25",
	}

	event, err := s.svc.CreateEvent(s.ctx, organizer.ID, valid)
	s.Require().NoError(err)
	s.Equal(25, event.Capacity)
	s.True(event.Date.Equal(time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC)))
	s.Equal(organizer.ID, event.OrganizerID)

	for name, form := range map[string]CreateEventForm{
		"bad date":          {Title: "x", Date: "next tuesday", Capacity: "10"},
		"zero capacity":     {Title: "x", Date: valid.Date, Capacity: "0"},
		"negative capacity": {Title: "x", Date: valid.Date, Capacity: "-3"},
		"garbage capacity":  {Title: "x", Date: valid.Date, Capacity: "many"},
		"missing title":     {Date: valid.Date, Capacity: "10"},
	} {
		_, err := s.svc.CreateEvent(s.ctx, organizer.ID, form)
		s.ErrorIs(err, ErrInvalidInput, name)
	}

	count, err := s.db.CountEvents(s.ctx)
	s.NoError(err)
	s.EqualValues(1, count)
}

func (s *BookingTestSuite) TestListEventsSearch() {
	s.createEvent("Go Conference", 100)
	s.createEvent("Rust meetup", 50)
	s.createEvent("GOPHER CAMP", 30)

	all, err := s.svc.ListEvents(s.ctx, "")
	s.NoError(err)
	s.Len(all, 3)

	matched, err := s.svc.ListEvents(s.ctx, "go")
	s.NoError(err)
	s.Len(matched, 2)

	none, err := s.svc.ListEvents(s.ctx, "elixir")
	s.NoError(err)
	s.Empty(none)
}

func (s *BookingTestSuite) TestAdminSummary() {
	a := s.createUser("alice")
	s.createUser("bob")
	event := s.createEvent("Counted", 10)
	s.createEvent("Also counted", 10)
	s.NoError(s.svc.RegisterForEvent(s.ctx, a.ID, event.ID))

	summary, err := s.svc.AdminSummary(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(2, summary.TotalUsers)
	s.EqualValues(2, summary.TotalEvents)
	s.EqualValues(1, summary.TotalRegistrations)
	s.Len(summary.Events, 2)
}

// Concurrent requests racing for the last seat must never overbook:
// the transactional check-and-insert admits at most one winner.
func (s *BookingTestSuite) TestConcurrentLastSeat() {
	event := s.createEvent("One seat left", 1)

	users := make([]*models.User, 8)
	for i := range users {
		users[i] = s.createUser("racer-" + string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for _, user := range users {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			if err := s.svc.RegisterForEvent(s.ctx, userID, event.ID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(user.ID)
	}
	wg.Wait()

	count, err := s.db.CountRegistrationsForEvent(s.ctx, event.ID)
	s.Require().NoError(err)
	s.LessOrEqual(count, int64(1), "the last seat must never be sold twice")
	s.EqualValues(count, successes)
}

func TestBookingTestSuite(t *testing.T) {
	suite.Run(t, new(BookingTestSuite))
}
