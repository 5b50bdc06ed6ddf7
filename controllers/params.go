package controllers

import (
	"strconv"

	"github.com/dhnushshetty/food-cart-jsf/pkg/resp"

	"github.com/gin-gonic/gin"
)

// idParam parses a positive path id, answering 400 itself when it is not one.
func idParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}
