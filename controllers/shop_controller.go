package controllers

import (
	"github.com/dhnushshetty/food-cart-jsf/pkg/resp"
	"github.com/dhnushshetty/food-cart-jsf/services"
	"github.com/dhnushshetty/food-cart-jsf/utils"

	"github.com/gin-gonic/gin"
)

type ShopController struct{ Svc *services.ShopService }

func NewShopController(s *services.ShopService) *ShopController { return &ShopController{Svc: s} }

// GET /api/shops
func (h *ShopController) List(c *gin.Context) {
	shops, err := h.Svc.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, shops)
}

// GET /api/shops/:shopId/menu
func (h *ShopController) Menu(c *gin.Context) {
	shopID, ok := idParam(c, "shopId")
	if !ok {
		return
	}
	items, err := h.Svc.Menu(shopID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/owner/my-shop
func (h *ShopController) MyShop(c *gin.Context) {
	shop, err := h.Svc.OwnerShop(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, shop)
}

// PUT /api/owner/my-shop
func (h *ShopController) UpdateMyShop(c *gin.Context) {
	var req services.UpdateShopIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	shop, err := h.Svc.UpdateOwnerShop(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, shop)
}
