package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /login.
func (h *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if err := c.BindJSON(&in); err != nil {
		c.Fail(err)
		return
	}

	res, err := h.service.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(res)
}

// Register handles POST /register.
func (h *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if err := c.BindJSON(&in); err != nil {
		c.Fail(err)
		return
	}

	if _, err := h.service.Register(c.Context(), in); err != nil {
		c.Fail(err)
		return
	}
	c.Created("Berhasil register", nil)
}
