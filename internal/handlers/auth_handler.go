package handlers

import (
	"net/http"
	"time"

	"tableside/internal/middleware"
	"tableside/internal/services"
	"tableside/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService  services.AuthService
	sessions     session.Store
	sessionTTL   time.Duration
	cookieSecure bool
}

func NewAuthHandler(authService services.AuthService, sessions session.Store, sessionTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials, stores a session and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id := uuid.NewString()
	data := &session.Data{UserID: user.ID, CreatedAt: time.Now()}
	if err := h.sessions.Set(c.Request.Context(), id, data, h.sessionTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetCookie(middleware.SessionCookie, id, int(h.sessionTTL.Seconds()), "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout deletes the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not log out"})
			return
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// CurrentUser returns the session's user record, password hash excluded.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)
	user, err := h.authService.GetUser(userID)
	if err != nil {
		if err == services.ErrNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}
