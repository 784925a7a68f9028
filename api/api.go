// Package api wires the gin engine: sessions, middleware, templates
// and the route table.
package api

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/eventhall/eventhall/api/auth"
	"github.com/eventhall/eventhall/api/handler"
	"github.com/eventhall/eventhall/booking"
	"github.com/eventhall/eventhall/config"
	"github.com/eventhall/eventhall/database"
	"github.com/eventhall/eventhall/web"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        *database.Client
	svc       *booking.Service
}

// New creates the API server with all routes registered.
func New(cfg *config.Config, db *database.Client, svc *booking.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		db:        db,
		svc:       svc,
	}

	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.setupSession()
	if err := s.setupRenderer(); err != nil {
		return nil, err
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupSession() {
	key := s.cfg.Session.Key
	if key == "" {
		// Sessions won't survive a restart without a configured key.
		key = uuid.NewString()
		log.Warn("no session key configured, using an ephemeral key")
	}

	store := cookie.NewStore([]byte(key))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.Session.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("eventhall_session", store))
}

func (s *Server) setupRenderer() error {
	tmpl, err := template.New("").ParseFS(web.FS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.ginEngine.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return fmt.Errorf("failed to mount static files: %w", err)
	}
	s.ginEngine.StaticFS("/static", http.FS(static))
	return nil
}

func (s *Server) setupRoutes() {
	a := auth.New(s.db)
	h := handler.New(s.svc)

	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/register", a.RegisterPage)
	s.ginEngine.POST("/register", a.Register)
	s.ginEngine.GET("/login", a.LoginPage)
	s.ginEngine.POST("/login", a.Login)
	s.ginEngine.GET("/logout", a.Logout)
	s.ginEngine.GET("/events", h.Events)
	s.ginEngine.GET("/event/:id", h.EventDetail)

	protected := s.ginEngine.Group("/")
	protected.Use(auth.RequireAuth())
	protected.POST("/register_event/:id", h.RegisterForEvent)
	protected.POST("/cancel_registration/:id", h.CancelRegistration)
	protected.GET("/create_event", h.CreateEventPage)
	protected.POST("/create_event", h.CreateEvent)

	admin := s.ginEngine.Group("/admin")
	admin.Use(auth.RequireAuth(), auth.RequireAdmin(s.db))
	admin.GET("/dashboard", handler.NewAdmin(s.svc).Dashboard)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
