// Package devserver is a complete in-memory implementation of the task API
// the client consumes: email-only auth with JWT bearers, per-user task CRUD
// plus toggle. It backs cmd/mockapi for local development and the
// integration tests.
package devserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/pkg/ratelimit"
	"github.com/xyz-asif/gotasks/internal/pkg/response"
	"github.com/xyz-asif/gotasks/internal/pkg/token"
)

type Server struct {
	cfg    *config.Config
	store  *Store
	engine *gin.Engine
}

func New(cfg *config.Config) *Server {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:   cfg,
		store: NewStore(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimitRPS > 0 {
		limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limiter.StartCleanup(10*time.Minute, time.Hour)
		engine.Use(ratelimit.Middleware(limiter))
	}

	engine.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	auth := engine.Group("/auth")
	{
		auth.POST("/login", s.login)
		auth.POST("/register", s.register)
		auth.GET("/me", s.requireAuth, s.me)
	}

	tasks := engine.Group("/tasks")
	tasks.Use(s.requireAuth)
	{
		tasks.GET("", s.listTasks)
		tasks.POST("", s.createTask)
		tasks.PUT("/:id", s.updateTask)
		tasks.DELETE("/:id", s.deleteTask)
		tasks.PATCH("/:id/toggle", s.toggleTask)
	}

	s.engine = engine
	return s
}

// Handler exposes the router for http.Server and httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// requireAuth validates the bearer token and stashes the caller's identity on
// the context.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		response.Unauthorized(c, "Authorization header required")
		c.Abort()
		return
	}

	fields := strings.Fields(header)
	tokenString := header
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		tokenString = fields[1]
	}

	claims, err := token.Validate(tokenString, s.cfg.JWTSecret)
	if err != nil {
		response.Unauthorized(c, "Invalid token")
		c.Abort()
		return
	}

	if _, err := s.store.UserByID(claims.UserID); err != nil {
		response.Unauthorized(c, "Unknown user")
		c.Abort()
		return
	}

	c.Set("userID", claims.UserID)
	c.Set("email", claims.Email)
	c.Next()
}
