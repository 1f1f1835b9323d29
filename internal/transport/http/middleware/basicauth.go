package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"course-catalog/internal/app"
	"course-catalog/internal/model"
	"course-catalog/internal/transport/http/response"
)

const ContextUserKey = "currentUser"

// BasicAuth verifies the basic-auth header against stored credentials and
// attaches the resolved user to the request context. The internal failure
// reason is logged but never returned to the client.
func BasicAuth(authService *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			log.Printf("auth rejected: no method of authentication found")
			response.Message(c, http.StatusUnauthorized, "Access Denied")
			c.Abort()
			return
		}

		user, err := authService.Verify(email, password)
		if err != nil {
			log.Printf("auth rejected for %q: %v", email, err)
			response.Message(c, http.StatusUnauthorized, "Access Denied")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity attached by BasicAuth. Handlers behind
// the middleware may assume it is present.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
