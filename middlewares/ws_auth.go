// middlewares/ws_auth.go
package middlewares

import (
	"strings"

	"github.com/dhnushshetty/food-cart-jsf/pkg/resp"
	"github.com/dhnushshetty/food-cart-jsf/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware reads the JWT from ?token= first, since browsers cannot set
// headers on a websocket handshake, then from the Authorization header.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			h := c.GetHeader("Authorization")
			if strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}

		if tokenStr == "" {
			resp.Unauthorized(c, "missing token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		utils.SetIdentity(c, claims)
		c.Next()
	}
}
