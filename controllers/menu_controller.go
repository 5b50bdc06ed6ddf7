package controllers

import (
	"github.com/dhnushshetty/food-cart-jsf/pkg/resp"
	"github.com/dhnushshetty/food-cart-jsf/services"
	"github.com/dhnushshetty/food-cart-jsf/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct{ Svc *services.MenuService }

func NewMenuController(s *services.MenuService) *MenuController { return &MenuController{Svc: s} }

// POST /api/owner/menu
func (h *MenuController) Create(c *gin.Context) {
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.Add(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

// PUT /api/owner/menu/:itemId
func (h *MenuController) Update(c *gin.Context) {
	itemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.Update(utils.CurrentUserID(c), itemID, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /api/owner/menu/:itemId
func (h *MenuController) Delete(c *gin.Context) {
	itemID, ok := idParam(c, "itemId")
	if !ok {
		return
	}
	if err := h.Svc.Delete(utils.CurrentUserID(c), itemID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "menu item deleted"})
}
