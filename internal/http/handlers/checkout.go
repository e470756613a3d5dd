package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/checkout"
	"github.com/pedrosavio99/cafe-online-ifpb/pkg/view"
)

type CheckoutHandler struct {
	Checkout *checkout.Service
}

func NewCheckoutHandler(s *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{Checkout: s}
}

func (h *CheckoutHandler) Finalize(c *gin.Context) {
	u, loggedIn := middleware.CurrentUser(c)

	res, err := h.Checkout.Finalize(c.Request.Context(), checkout.FinalizeInput{
		UserID:   u.ID,
		Email:    u.Email,
		LoggedIn: loggedIn,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	out := gin.H{"cart_cleared": res.CartCleared}
	if res.RedirectURL != "" {
		out["redirect_url"] = res.RedirectURL
	}
	if res.Order != nil {
		out["order"] = view.FromOrder(*res.Order, nil)
	}
	c.JSON(http.StatusOK, out)
}
