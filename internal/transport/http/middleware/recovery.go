package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"course-catalog/internal/transport/http/response"
)

// Recovery is the catch-all responder for unanticipated failures. The
// stack trace is logged only when diagnostic error logging is enabled.
func Recovery(logErrorDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				if logErrorDetails {
					log.Printf("global error handler: %v\n%s", recovered, debug.Stack())
				}

				message := fmt.Sprint(recovered)
				if err, ok := recovered.(error); ok {
					message = err.Error()
				}
				response.Message(c, http.StatusInternalServerError, message)
				c.Abort()
			}
		}()
		c.Next()
	}
}
