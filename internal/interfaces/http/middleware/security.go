package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds security headers to responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent clickjacking
		c.Header("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// XSS Protection
		c.Header("X-XSS-Protection", "1; mode=block")

		// Referrer Policy
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Product and courier images come from remote CDNs
		c.Header("Content-Security-Policy", "default-src 'self'; img-src 'self' https:")

		// Delivery tracking is the only consumer of browser geolocation
		c.Header("Permissions-Policy", "geolocation=(self)")

		// Hide server information
		c.Header("Server", "Grocery API")

		c.Next()
	}
}
