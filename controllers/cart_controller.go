package controllers

import (
	"github.com/dhnushshetty/food-cart-jsf/pkg/resp"
	"github.com/dhnushshetty/food-cart-jsf/services"
	"github.com/dhnushshetty/food-cart-jsf/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// every mutation answers with the fresh cart
func (h *CartController) reply(c *gin.Context, uid uint) {
	cart, err := h.Svc.Get(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// GET /api/cart
func (h *CartController) Get(c *gin.Context) {
	h.reply(c, utils.CurrentUserID(c))
}

// POST /api/cart/add
func (h *CartController) Add(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Add(uid, &req); err != nil {
		resp.Error(c, err)
		return
	}
	h.reply(c, uid)
}

// PATCH /api/cart/items/:cartItemId
func (h *CartController) UpdateQty(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	itemID, ok := idParam(c, "cartItemId")
	if !ok {
		return
	}
	var req services.UpdateQtyIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateQty(uid, itemID, *req.Quantity); err != nil {
		resp.Error(c, err)
		return
	}
	h.reply(c, uid)
}

// DELETE /api/cart/remove/:cartItemId
func (h *CartController) Remove(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	itemID, ok := idParam(c, "cartItemId")
	if !ok {
		return
	}
	if err := h.Svc.RemoveItem(uid, itemID); err != nil {
		resp.Error(c, err)
		return
	}
	h.reply(c, uid)
}

// DELETE /api/cart
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if err := h.Svc.Clear(uid); err != nil {
		resp.Error(c, err)
		return
	}
	h.reply(c, uid)
}
