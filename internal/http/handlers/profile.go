package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/validation"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/profile"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

type ProfileHandler struct {
	Profiles *profile.Service
}

func NewProfileHandler(p *profile.Service) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	p, err := h.Profiles.Get(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profileJSON(p))
}

type updateProfileInput struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	OrderType     string `json:"order_type" binding:"required"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var in updateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &in)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	cur, err := h.Profiles.Get(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	cur.PaymentMethod = in.PaymentMethod
	cur.OrderType = in.OrderType

	p, err := h.Profiles.Update(c.Request.Context(), cur)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profileJSON(p))
}

type saveAddressInput struct {
	Address string `json:"address" binding:"required"`
}

func (h *ProfileHandler) SaveAddress(c *gin.Context) {
	var in saveAddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &in)))
		return
	}

	u, _ := middleware.CurrentUser(c)
	p, err := h.Profiles.SaveAddress(c.Request.Context(), u.ID, in.Address)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profileJSON(p))
}

func profileJSON(p profile.Profile) gin.H {
	return gin.H{
		"payment_method":   p.PaymentMethod,
		"order_type":       p.OrderType,
		"delivery_address": p.DeliveryAddress,
	}
}
