package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/storefront/account"
)

// HomePath is where the browser goes after logging out.
const HomePath = "/"

type AccountController struct {
	Viewer   *account.Viewer
	Shoppers *Shoppers
}

func NewAccountController(viewer *account.Viewer, shoppers *Shoppers) *AccountController {
	return &AccountController{Viewer: viewer, Shoppers: shoppers}
}

// GetAccount shows the order history, or sends anonymous visitors to the login page.
func (ac *AccountController) GetAccount(c *gin.Context) {
	shopper, err := ac.Shoppers.current(c)
	if err != nil {
		respond(c, err)
		return
	}
	page, err := ac.Viewer.Load(c.Request.Context(), shopper.Session)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ac *AccountController) Logout(c *gin.Context) {
	shopper, err := ac.Shoppers.current(c)
	if err != nil {
		respond(c, err)
		return
	}
	if err := ac.Viewer.Logout(c.Request.Context(), shopper.Session); err != nil {
		respond(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, HomePath)
}
