package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront/auth"
	apperrors "github.com/yashrajoria/storefront/common/errors"
)

type AuthController struct {
	Service  *auth.Service
	Shoppers *Shoppers
}

func NewAuthController(service *auth.Service, shoppers *Shoppers) *AuthController {
	return &AuthController{Service: service, Shoppers: shoppers}
}

func (ac *AuthController) Login(c *gin.Context) {
	var form auth.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respond(c, apperrors.ErrBadRequest.Wrap(err))
		return
	}
	shopper, err := ac.Shoppers.current(c)
	if err != nil {
		respond(c, err)
		return
	}

	id, err := ac.Service.Login(c.Request.Context(), shopper.Session, form)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, id)
}

func (ac *AuthController) Register(c *gin.Context) {
	var form auth.RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respond(c, apperrors.ErrBadRequest.Wrap(err))
		return
	}
	if err := ac.Service.Register(c.Request.Context(), form); err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Регистрация прошла успешно"})
}
