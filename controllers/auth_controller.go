package controllers

import (
	"github.com/dhnushshetty/food-cart-jsf/pkg/resp"
	"github.com/dhnushshetty/food-cart-jsf/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

// POST /api/auth/register/customer
func (h *AuthController) RegisterCustomer(c *gin.Context) {
	var req services.RegisterCustomerIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := h.Svc.RegisterCustomer(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"id": user.ID, "username": user.Username, "email": user.Email, "role": user.Role})
}

// POST /api/auth/register/owner
func (h *AuthController) RegisterOwner(c *gin.Context) {
	var req services.RegisterOwnerIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, shop, err := h.Svc.RegisterOwner(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{
		"id": user.ID, "username": user.Username, "email": user.Email, "role": user.Role,
		"shopId": shop.ID,
	})
}

// POST /api/auth/login
func (h *AuthController) Login(c *gin.Context) {
	var req services.LoginIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Login(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
