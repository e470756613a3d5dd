package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/notify"
)

type NotificationsHandler struct {
	Notify *notify.Center
}

func NewNotificationsHandler(n *notify.Center) *NotificationsHandler {
	return &NotificationsHandler{Notify: n}
}

func (h *NotificationsHandler) List(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	active := h.Notify.Active(u.ID)
	if active == nil {
		active = []notify.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": active})
}
