package utils

import "github.com/gin-gonic/gin"

// gin context keys for the signed-in account
const (
	CtxUserID = "userId"
	CtxRole   = "role"
)

// SetIdentity stores the token's account on the request.
func SetIdentity(c *gin.Context, claims *Claims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
}

// CurrentUserID is 0 on routes without auth middleware.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(CtxUserID)
}

func CurrentRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}
