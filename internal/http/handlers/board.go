package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/orders"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
	"github.com/pedrosavio99/cafe-online-ifpb/pkg/view"
)

// BoardHandler exposes the operator board: the four status buckets, the poll
// cycle controls and the guarded transitions.
type BoardHandler struct {
	Registry   *orders.Registry
	Poller     *orders.Poller
	Controller *orders.Controller

	// baseCtx outlives the request that armed the poller; a request context
	// would cancel the cycle as soon as the response is written.
	baseCtx context.Context
}

func NewBoardHandler(reg *orders.Registry, p *orders.Poller, ctrl *orders.Controller, baseCtx context.Context) *BoardHandler {
	return &BoardHandler{Registry: reg, Poller: p, Controller: ctrl, baseCtx: baseCtx}
}

func (h *BoardHandler) Get(c *gin.Context) {
	selected, _ := h.Controller.Selected()
	c.JSON(http.StatusOK, view.FromBoard(
		h.Registry,
		h.Poller.State(),
		h.Poller.Loading(),
		h.Poller.LastErrors(),
		selected,
	))
}

// StartPolling arms the poll cycle; also the resume call after expiry.
func (h *BoardHandler) StartPolling(c *gin.Context) {
	h.Poller.Start(h.baseCtx)
	c.JSON(http.StatusOK, gin.H{"state": string(h.Poller.State())})
}

func (h *BoardHandler) StopPolling(c *gin.Context) {
	h.Poller.Stop()
	c.JSON(http.StatusOK, gin.H{"state": string(h.Poller.State())})
}

func (h *BoardHandler) Refresh(c *gin.Context) {
	h.Poller.Refresh(c.Request.Context())
	h.Get(c)
}

func (h *BoardHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	o, ok := h.Registry.Find(id)
	if !ok {
		middleware.Fail(c, apperr.NotFoundErr("Pedido não encontrado."))
		return
	}
	c.JSON(http.StatusOK, view.FromOrder(o, h.Controller.AllowedActions(id)))
}

func (h *BoardHandler) Select(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.Registry.Find(id); !ok {
		middleware.Fail(c, apperr.NotFoundErr("Pedido não encontrado."))
		return
	}
	h.Controller.Select(id)
	c.JSON(http.StatusOK, gin.H{"selected": id})
}

func (h *BoardHandler) ClearSelection(c *gin.Context) {
	h.Controller.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"selected": ""})
}

// Transition applies approve, reject or finalize to one order.
func (h *BoardHandler) Transition(c *gin.Context) {
	id := c.Param("id")
	action := orders.Action(c.Param("action"))

	if err := h.Controller.Apply(c.Request.Context(), action, id); err != nil {
		middleware.Fail(c, err)
		return
	}
	h.Get(c)
}
