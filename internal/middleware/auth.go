package middleware

import (
	"net/http"

	"tableside/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the login session cookie.
const SessionCookie = "session_id"

// AuthRequired rejects requests without a live session cookie and injects
// the session's user id into the request context.
func AuthRequired(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		data, err := sessions.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Set("userID", data.UserID)
		c.Set("sessionID", id)
		c.Next()
	}
}

// GetUserID extracts the caller's user id set by AuthRequired.
func GetUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	id, _ := val.(uint)
	return id
}

// CurrentUserID resolves the session cookie without aborting. It lets public
// endpoints behave differently for logged-in staff.
func CurrentUserID(c *gin.Context, sessions session.Store) (uint, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil {
		return 0, false
	}
	data, err := sessions.Get(c.Request.Context(), id)
	if err != nil {
		return 0, false
	}
	return data.UserID, true
}
