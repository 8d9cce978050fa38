package middlewares

import (
	"github.com/gin-gonic/gin"
)

// Pages are same-origin HTML forms, so 'self' covers everything served here.
const defaultCSP = "default-src 'self'"

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("X-XSS-Protection", "0")
		c.Header("Content-Security-Policy", defaultCSP)
		c.Next()
	}
}
