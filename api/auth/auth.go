// Package auth implements local username/password authentication and
// the session guards protecting the web routes.
package auth

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/eventhall/eventhall/database"
	"github.com/eventhall/eventhall/database/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Session keys.
const (
	sessionUserID   = "user_id"
	sessionUsername = "username"
)

// Handler serves the register/login/logout routes.
type Handler struct {
	db *database.Client
}

// New creates a new auth handler.
func New(db *database.Client) *Handler {
	return &Handler{db: db}
}

// RegisterPage renders the account registration form.
func (h *Handler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register creates a new account from the submitted form. Duplicate
// usernames render an inline error on the form, everything else
// redirects to the login page.
func (h *Handler) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error": "Username and password are required",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{
			"Error": "Something went wrong, please try again",
		})
		return
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.HTML(http.StatusConflict, "register.html", gin.H{
				"Error": "Username already exists",
			})
			return
		}
		log.Error("failed to create user", "error", err)
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{
			"Error": "Something went wrong, please try again",
		})
		return
	}

	log.Info("user registered", "username", username)
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login verifies the credentials and establishes a session. Unknown
// users and wrong passwords get the same inline error.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to look up user", "error", err)
		}
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid credentials",
		})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid credentials",
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionUsername, user.Username)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": "Something went wrong, please try again",
		})
		return
	}

	log.Info("user logged in", "username", user.Username)
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session unconditionally and redirects home.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}
