package handler

import (
	"net/http"

	"github.com/eventhall/eventhall/api/models"
	"github.com/eventhall/eventhall/booking"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *booking.Service
}

func NewAdmin(svc *booking.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Dashboard shows the aggregate counts and the full event list.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	summary, err := h.svc.AdminSummary(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", pageData(c, gin.H{
			"Error": "Failed to load dashboard",
		}))
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", pageData(c, gin.H{
		"TotalUsers":         summary.TotalUsers,
		"TotalEvents":        summary.TotalEvents,
		"TotalRegistrations": summary.TotalRegistrations,
		"Events":             models.ToEventViews(summary.Events, nil),
	}))
}
