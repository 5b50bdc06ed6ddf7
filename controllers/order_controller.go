package controllers

import (
	"github.com/dhnushshetty/food-cart-jsf/pkg/resp"
	"github.com/dhnushshetty/food-cart-jsf/services"
	"github.com/dhnushshetty/food-cart-jsf/utils"

	"github.com/gin-gonic/gin"
)

// OrderController serves the customer side of orders.
type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /api/orders/place
func (h *OrderController) Place(c *gin.Context) {
	order, err := h.Svc.PlaceOrder(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /api/orders/my-history
func (h *OrderController) History(c *gin.Context) {
	orders, err := h.Svc.History(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /api/orders/:orderId
func (h *OrderController) Detail(c *gin.Context) {
	orderID, ok := idParam(c, "orderId")
	if !ok {
		return
	}
	order, err := h.Svc.DetailForUser(utils.CurrentUserID(c), orderID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}
