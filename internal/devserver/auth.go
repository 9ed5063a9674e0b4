package devserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gotasks/internal/pkg/response"
	"github.com/xyz-asif/gotasks/internal/pkg/token"
	"github.com/xyz-asif/gotasks/internal/pkg/validator"
)

type authRequest struct {
	Email string `json:"email"`
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

func (s *Server) login(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}
	if !validator.IsValidEmail(req.Email) {
		response.BadRequest(c, "A valid email is required")
		return
	}

	user, err := s.store.UserByEmail(req.Email)
	if err != nil {
		response.Unauthorized(c, "Invalid email")
		return
	}

	s.issueSession(c, user, response.OK)
}

func (s *Server) register(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}
	if !validator.IsValidEmail(req.Email) {
		response.BadRequest(c, "A valid email is required")
		return
	}

	user, err := s.store.CreateUser(req.Email)
	if err != nil {
		response.Conflict(c, "Email already registered")
		return
	}

	s.issueSession(c, user, response.Created)
}

func (s *Server) me(c *gin.Context) {
	user, err := s.store.UserByID(c.GetString("userID"))
	if err != nil {
		response.Unauthorized(c, "Unknown user")
		return
	}
	response.OK(c, user)
}

func (s *Server) issueSession(c *gin.Context, user User, send func(*gin.Context, interface{})) {
	ttl := time.Duration(s.cfg.JWTExpireHours) * time.Hour
	accessToken, err := token.Generate(user.ID, user.Email, s.cfg.JWTSecret, ttl)
	if err != nil {
		response.Error(c, 500, "Failed to generate token")
		return
	}
	send(c, authResponse{AccessToken: accessToken, User: user})
}
