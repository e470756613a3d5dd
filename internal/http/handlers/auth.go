package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/validation"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/users"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

type AuthHandler struct {
	Users   *users.Service
	Session middleware.SessionCfg
}

func NewAuthHandler(u *users.Service, session middleware.SessionCfg) *AuthHandler {
	return &AuthHandler{Users: u, Session: session}
}

type registerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &in)))
		return
	}

	u, err := h.Users.Register(c.Request.Context(), in.Email, in.Name, in.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	h.openSession(c, u)
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &in)))
		return
	}

	u, err := h.Users.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	h.openSession(c, u)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if v, ok := c.Get("session"); ok {
		if sess, ok := v.(*middleware.Session); ok {
			_ = middleware.DeleteSession(h.Session, sess.ID)
		}
	}
	c.SetCookie(h.Session.CookieName, "", -1, "/", "", h.Session.Secure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"logged_in": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"logged_in": true,
		"user": gin.H{
			"id":    u.ID,
			"email": u.Email,
			"name":  u.Name,
			"role":  u.Role,
		},
	})
}

func (h *AuthHandler) openSession(c *gin.Context, u users.User) {
	sess, err := middleware.CreateSession(h.Session, u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	maxAge := int(h.Session.TTL.Seconds())
	c.SetCookie(h.Session.CookieName, sess.ID, maxAge, "/", "", h.Session.Secure, true)
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    u.ID,
			"email": u.Email,
			"name":  u.Name,
			"role":  u.Role,
		},
	})
}
