package auth

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/eventhall/eventhall/database"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireAuth redirects anonymous requests to the login page. On
// success it stores the session identity in the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(sessionUserID)
		if userID == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(sessionUserID, userID.(uint))
		if username, ok := session.Get(sessionUsername).(string); ok {
			c.Set(sessionUsername, username)
		}
	}
}

// RequireAdmin loads the session's user from the store and denies
// everyone without the admin flag: anonymous requests go to the login
// page, authenticated non-admins to the home page. Checking the row
// instead of a session claim means a revoked flag takes effect
// immediately.
func RequireAdmin(db *database.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(sessionUserID).(uint)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := db.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Error("failed to load user for admin check", "error", err)
			}
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		if !user.IsAdmin {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set("user", user)
	}
}

// SessionUserID returns the authenticated user id from the request
// context, or zero for anonymous requests.
func SessionUserID(c *gin.Context) uint {
	if id, ok := c.Get(sessionUserID); ok {
		return id.(uint)
	}
	// Fall back to the session for routes without RequireAuth,
	// e.g. the public event detail page.
	if id, ok := sessions.Default(c).Get(sessionUserID).(uint); ok {
		return id
	}
	return 0
}

// SessionUsername returns the authenticated username, or empty.
func SessionUsername(c *gin.Context) string {
	if name, ok := c.Get(sessionUsername); ok {
		return name.(string)
	}
	if name, ok := sessions.Default(c).Get(sessionUsername).(string); ok {
		return name
	}
	return ""
}
