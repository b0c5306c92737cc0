package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"artifai/internal/logging"
)

// Recovery turns a panic into onPanic's response. Handlers run mutations
// inside gorm transactions, which roll back before the panic reaches here.
func Recovery(onPanic gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logging.FromContext(c.Request.Context()).Error().
					Str("panic", fmt.Sprint(recovered)).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")
				if c.Writer.Written() {
					c.Abort()
					return
				}
				onPanic(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}
