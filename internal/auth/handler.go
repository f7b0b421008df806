// Package auth serves the demo auth endpoints. Every endpoint succeeds
// unconditionally: no credentials are checked or stored. The issued tokens
// are real signed JWTs so clients can exercise their token handling.
package auth

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proctorai/backend/pkg/response"
)

const (
	demoUserID   = 1
	demoUsername = "demo_user"
	demoEmail    = "demo@example.com"
	demoRole     = "interviewer"
)

// RegisterRequest is the body for POST /api/auth/register. All fields are
// optional; missing ones take demo defaults.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// User is the user object returned by the auth endpoints.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Handler handles the demo auth HTTP endpoints.
type Handler struct {
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(jwt *JWTService, logger *zap.Logger) *Handler {
	return &Handler{jwt: jwt, logger: logger}
}

// Login handles POST /api/auth/login. Always succeeds as the demo user.
func (h *Handler) Login(c *gin.Context) {
	user := User{ID: demoUserID, Username: demoUsername, Email: demoEmail, Role: demoRole}
	token, err := h.jwt.Generate(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		response.Internal(c, "Failed to generate token", err)
		return
	}
	response.OK(c, "Login successful", gin.H{"user": user, "token": token})
}

// Register handles POST /api/auth/register. Echoes the supplied identity
// with demo defaults; always succeeds.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	_ = c.ShouldBindJSON(&req)

	user := User{ID: demoUserID, Username: demoUsername, Email: demoEmail, Role: demoRole}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	token, err := h.jwt.Generate(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		response.Internal(c, "Failed to generate token", err)
		return
	}
	response.OK(c, "Registration successful", gin.H{"user": user, "token": token})
}

// Profile handles GET /api/auth/profile. A valid bearer token personalizes
// the response; anything else falls back to the demo user. Never fails.
func (h *Handler) Profile(c *gin.Context) {
	user := User{
		ID:        demoUserID,
		Username:  demoUsername,
		Email:     demoEmail,
		Role:      demoRole,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if claims, err := h.jwt.Validate(strings.TrimPrefix(header, "Bearer ")); err == nil {
			user.ID = claims.UserID
			user.Username = claims.Username
			user.Email = claims.Email
			user.Role = claims.Role
		}
	}
	response.OK(c, "Profile fetched successfully", gin.H{"user": user})
}
