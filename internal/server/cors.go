package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// _corsMaxAge is the time preflight responses may be cached for.
const _corsMaxAge = 24 * 60 * 60 // 24 hours.

// CORSConfig holds the cross-origin settings.
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API. A "*"
	// entry allows any origin.
	AllowedOrigins []string `default:"*" yaml:"allowed_origins"`

	// AllowedMethods lists the methods allowed for cross-origin calls.
	AllowedMethods []string `default:"GET,POST" yaml:"allowed_methods"`
}

// allowOrigin returns the value of the Access-Control-Allow-Origin header
// for the origin, or an empty string if the origin is not allowed.
func (c CORSConfig) allowOrigin(origin string) string {
	if origin == "" {
		return ""
	}

	for _, allowed := range c.AllowedOrigins {
		switch {
		case allowed == "*":
			return "*"
		case strings.EqualFold(allowed, origin):
			return origin
		}
	}

	return ""
}

// corsMiddleware sets the cross-origin headers and answers preflight
// requests.
func corsMiddleware(cfg CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowedMethods, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := cfg.allowOrigin(origin)

		if allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID")
			c.Header("Access-Control-Max-Age", strconv.Itoa(_corsMaxAge))

			if allowed != "*" {
				c.Header("Vary", "Origin")
			}
		}

		if c.Request.Method != http.MethodOptions || origin == "" {
			c.Next()
			return
		}

		if allowed == "" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.AbortWithStatus(http.StatusNoContent)
	}
}
