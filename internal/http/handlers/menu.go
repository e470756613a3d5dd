package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/validation"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/menu"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
	"github.com/pedrosavio99/cafe-online-ifpb/pkg/view"
)

type MenuHandler struct {
	Menu *menu.Service
}

func NewMenuHandler(m *menu.Service) *MenuHandler {
	return &MenuHandler{Menu: m}
}

func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.Menu.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromMenu(items)})
}

func (h *MenuHandler) GetBySlug(c *gin.Context) {
	it, err := h.Menu.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromMenuItem(it))
}

type createMenuItemInput struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=255"`
	Kind        string `json:"kind" binding:"required"`
	PriceCents  int64  `json:"price_cents" binding:"min=0"`
}

func (h *MenuHandler) Create(c *gin.Context) {
	var in createMenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &in)))
		return
	}

	it, err := h.Menu.Create(c.Request.Context(), menu.CreateInput{
		Name:        in.Name,
		Description: in.Description,
		Kind:        in.Kind,
		PriceCents:  in.PriceCents,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.FromMenuItem(it))
}

type setPriceInput struct {
	PriceCents int64 `json:"price_cents" binding:"min=0"`
}

func (h *MenuHandler) SetPrice(c *gin.Context) {
	var in setPriceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &in)))
		return
	}
	if err := h.Menu.SetPrice(c.Request.Context(), c.Param("id"), in.PriceCents); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type setActiveInput struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *MenuHandler) SetActive(c *gin.Context) {
	var in setActiveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Dados inválidos.", validation.FromBindError(err, &in)))
		return
	}
	if err := h.Menu.SetActive(c.Request.Context(), c.Param("id"), *in.Active); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UploadImage accepts multipart form field "image".
func (h *MenuHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Envie o arquivo no campo \"image\".", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	it, err := h.Menu.AttachImage(c.Request.Context(), c.Param("id"),
		fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.FromMenuItem(it))
}
