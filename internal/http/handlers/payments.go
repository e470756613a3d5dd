package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/cart"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/notify"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

// PaymentsHandler receives the provider's back_urls redirects.
type PaymentsHandler struct {
	Cart   *cart.Service
	Notify *notify.Center
	Log    *slog.Logger
}

func NewPaymentsHandler(c *cart.Service, n *notify.Center, log *slog.Logger) *PaymentsHandler {
	return &PaymentsHandler{Cart: c, Notify: n, Log: log}
}

// Callback lands on /payments/callback/:outcome. Only a confirmed payment
// empties the cart; failure and pending leave it for retry.
func (h *PaymentsHandler) Callback(c *gin.Context) {
	outcome := c.Param("outcome")
	u, loggedIn := middleware.CurrentUser(c)

	h.Log.Info("payment_callback",
		slog.String("outcome", outcome),
		slog.Bool("logged_in", loggedIn),
	)

	switch outcome {
	case "success":
		if loggedIn {
			if err := h.Cart.Clear(c.Request.Context(), u.ID); err != nil {
				h.Log.Warn("cart_clear_failed", slog.String("user_id", u.ID), slog.Any("err", err))
			}
			h.Notify.Success(u.ID, "Pagamento aprovado! Pedido confirmado.")
		}
		c.JSON(http.StatusOK, gin.H{"outcome": outcome})
	case "failure":
		if loggedIn {
			h.Notify.Error(u.ID, "Pagamento recusado. Tente novamente.")
		}
		c.JSON(http.StatusOK, gin.H{"outcome": outcome})
	case "pending":
		c.JSON(http.StatusOK, gin.H{"outcome": outcome})
	default:
		middleware.Fail(c, apperr.NotFoundErr("Retorno de pagamento desconhecido."))
	}
}
