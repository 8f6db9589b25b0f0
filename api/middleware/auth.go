package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/ordersnap/models"
)

// Auth returns API-key authentication middleware.
//
// Supports three styles:
//
//	X-API-Key: <key>
//	Authorization: Bearer <key>
//	?api_key=<key>
//
// If apiKeys is empty, the middleware is a no-op (open access).
func Auth(apiKeys []string) gin.HandlerFunc {
	if len(apiKeys) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	keySet := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keySet[k] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		key := extractAPIKey(c)
		if _, valid := keySet[key]; key == "" || !valid {
			// The error string is fixed by the caller contract.
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ScrapeResult{
				Success: false,
				Orders:  []models.Order{},
				Error:   "Unauthorized",
			})
			return
		}

		c.Set("api_key", key)
		c.Next()
	}
}

// extractAPIKey tries X-API-Key, then Authorization: Bearer, then the
// api_key query parameter.
func extractAPIKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Query("api_key")
}
