// controllers/owner_order_controller.go
package controllers

import (
	"github.com/dhnushshetty/food-cart-jsf/pkg/resp"
	"github.com/dhnushshetty/food-cart-jsf/services"
	"github.com/dhnushshetty/food-cart-jsf/utils"

	"github.com/gin-gonic/gin"
)

type OwnerOrderController struct {
	Svc   *services.OrderService
	Stats *services.StatsService
}

func NewOwnerOrderController(s *services.OrderService, stats *services.StatsService) *OwnerOrderController {
	return &OwnerOrderController{Svc: s, Stats: stats}
}

type UpdateStatusIn struct {
	Status string `json:"status" binding:"required"`
}

// GET /api/owner/orders?status=
func (h *OwnerOrderController) List(c *gin.Context) {
	orders, err := h.Svc.ListForShop(utils.CurrentUserID(c), c.Query("status"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// PUT /api/owner/orders/:orderId/status
func (h *OwnerOrderController) UpdateStatus(c *gin.Context) {
	orderID, ok := idParam(c, "orderId")
	if !ok {
		return
	}
	var req UpdateStatusIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.UpdateStatus(utils.CurrentUserID(c), orderID, req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /api/owner/statistics
func (h *OwnerOrderController) Statistics(c *gin.Context) {
	stats, err := h.Stats.Dashboard(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, stats)
}
