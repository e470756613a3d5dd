package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/validation"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/cart"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/menu"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
	"github.com/pedrosavio99/cafe-online-ifpb/pkg/view"
)

type CartHandler struct {
	Cart *cart.Service
	Menu *menu.Service
}

func NewCartHandler(c *cart.Service, m *menu.Service) *CartHandler {
	return &CartHandler{Cart: c, Menu: m}
}

func (h *CartHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	items, err := h.Cart.Items(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromCart(items))
}

type addToCartInput struct {
	Slug     string `json:"slug" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// Add resolves price and kind from the menu so clients never set prices.
func (h *CartHandler) Add(c *gin.Context) {
	var in addToCartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &in)))
		return
	}

	it, err := h.Menu.GetBySlug(c.Request.Context(), in.Slug)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	u, _ := middleware.CurrentUser(c)
	items, err := h.Cart.Add(c.Request.Context(), u.ID, cart.Item{
		Name:       it.Name,
		PriceCents: it.PriceCents,
		Quantity:   in.Quantity,
		Kind:       it.Kind,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromCart(items))
}

func (h *CartHandler) Clear(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	if err := h.Cart.Clear(c.Request.Context(), u.ID); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromCart(nil))
}
