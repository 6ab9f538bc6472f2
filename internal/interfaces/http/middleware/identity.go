package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Identity extracts the caller identity forwarded by the edge gateway and
// stores it in the request context under "user_id". Authentication itself
// happens upstream; this service only trusts the forwarded header.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
				c.Set("user_id", uint(id))
			}
		}
		c.Next()
	}
}
