// Package handler contains the gin handlers for the web pages and the
// JSON registration endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/eventhall/eventhall/api/auth"
	"github.com/eventhall/eventhall/api/models"
	"github.com/eventhall/eventhall/booking"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *booking.Service
}

func New(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

// eventID parses the :id route parameter.
func eventID(c *gin.Context) (uint, error) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.ToUint(raw)
}

// pageData merges the session identity into the template data so the
// nav bar can render the login state.
func pageData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Username"] = auth.SessionUsername(c)
	return data
}

// registeredEvents returns the viewer's registered event ids, or nil
// for anonymous viewers.
func (h *Handler) registeredEvents(c *gin.Context) map[uint]bool {
	userID := auth.SessionUserID(c)
	if userID == 0 {
		return nil
	}
	ids, err := h.svc.RegisteredEventIDs(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to load user registrations", "error", err)
		return nil
	}
	return ids
}

// Home renders the event list.
func (h *Handler) Home(c *gin.Context) {
	events, err := h.svc.ListEvents(c.Request.Context(), "")
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", pageData(c, gin.H{
			"Error": "Failed to load events",
		}))
		return
	}
	c.HTML(http.StatusOK, "index.html", pageData(c, gin.H{
		"Events": models.ToEventViews(events, h.registeredEvents(c)),
	}))
}

// Events renders the event list filtered by the search query.
func (h *Handler) Events(c *gin.Context) {
	search := c.Query("search")
	events, err := h.svc.ListEvents(c.Request.Context(), search)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", pageData(c, gin.H{
			"Error": "Failed to load events",
		}))
		return
	}
	c.HTML(http.StatusOK, "events.html", pageData(c, gin.H{
		"Events": models.ToEventViews(events, h.registeredEvents(c)),
		"Search": search,
	}))
}

// EventDetail renders one event with the viewer's registration status.
func (h *Handler) EventDetail(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", pageData(c, gin.H{
			"Error": "Event not found",
		}))
		return
	}

	detail, err := h.svc.GetEventDetail(c.Request.Context(), id, auth.SessionUserID(c))
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.HTML(http.StatusNotFound, "error.html", pageData(c, gin.H{
				"Error": "Event not found",
			}))
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", pageData(c, gin.H{
			"Error": "Failed to load event",
		}))
		return
	}

	view := models.ToEventView(*detail.Event, nil)
	view.IsRegistered = detail.IsRegistered
	c.HTML(http.StatusOK, "event_detail.html", pageData(c, gin.H{
		"Event": view,
	}))
}

// RegisterForEvent signs the session user up for a seat. Capacity and
// duplicate failures come back as structured JSON with a 400.
func (h *Handler) RegisterForEvent(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
		return
	}

	userID := auth.SessionUserID(c)
	switch err := h.svc.RegisterForEvent(c.Request.Context(), userID, id); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registration successful"})
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
	case errors.Is(err, booking.ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No seats available"})
	case errors.Is(err, booking.ErrAlreadyRegistered):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Already registered"})
	default:
		log.Error("failed to register for event", "error", err, "event_id", id, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
	}
}

// CancelRegistration frees the session user's seat.
func (h *Handler) CancelRegistration(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Registration not found"})
		return
	}

	userID := auth.SessionUserID(c)
	switch err := h.svc.CancelRegistration(c.Request.Context(), userID, id); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registration cancelled"})
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Registration not found"})
	default:
		log.Error("failed to cancel registration", "error", err, "event_id", id, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cancellation failed"})
	}
}

// CreateEventPage renders the event creation form.
func (h *Handler) CreateEventPage(c *gin.Context) {
	c.HTML(http.StatusOK, "create_event.html", pageData(c, nil))
}

// CreateEvent creates a new event owned by the session user. Invalid
// input re-renders the form with an inline error.
func (h *Handler) CreateEvent(c *gin.Context) {
	form := booking.CreateEventForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
		Location:    c.PostForm("location"),
		Capacity:    c.PostForm("capacity"),
	}

	if _, err := h.svc.CreateEvent(c.Request.Context(), auth.SessionUserID(c), form); err != nil {
		if errors.Is(err, booking.ErrInvalidInput) {
			c.HTML(http.StatusBadRequest, "create_event.html", pageData(c, gin.H{
				"Error": err.Error(),
				"Form":  form,
			}))
			return
		}
		log.Error("failed to create event", "error", err)
		c.HTML(http.StatusInternalServerError, "create_event.html", pageData(c, gin.H{
			"Error": "Something went wrong, please try again",
			"Form":  form,
		}))
		return
	}

	c.Redirect(http.StatusFound, "/")
}
