package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/storeclient"
	"github.com/pedrosavio99/cafe-online-ifpb/pkg/view"
)

type MyOrdersHandler struct {
	Store *storeclient.Client
}

func NewMyOrdersHandler(store *storeclient.Client) *MyOrdersHandler {
	return &MyOrdersHandler{Store: store}
}

// List fetches the customer's own orders straight from the store; the board
// registry is operator state and is not consulted here.
func (h *MyOrdersHandler) List(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	got, err := h.Store.FetchByEmail(c.Request.Context(), u.Email)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": view.FromOrders(got)})
}
