package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type listEditor[T any, D any] interface {
	BeginEdit(ctx context.Context, sessionID uuid.UUID, id int64) (D, error)
	UpdateDraft(ctx context.Context, sessionID uuid.UUID, field, value string) (D, error)
	Save(ctx context.Context, sessionID uuid.UUID, id int64) (T, error)
	Cancel(ctx context.Context, sessionID uuid.UUID)
	Add(ctx context.Context, sessionID uuid.UUID) (D, error)
	Delete(ctx context.Context, sessionID uuid.UUID, id int64, confirmed bool) error
}

// ListHandler serves the editor routes of one id-keyed list section.
type ListHandler[T any, D any] struct {
	editor listEditor[T, D]
	logger logger.Logger
}

func (h *ListHandler[T, D]) Add(c *gin.Context) {
	sid, ok := mustSessionID(c)
	if !ok {
		return
	}
	d, err := h.editor.Add(c.Request.Context(), sid)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *ListHandler[T, D]) BeginEdit(c *gin.Context) {
	sid, ok := mustSessionID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	d, err := h.editor.BeginEdit(c.Request.Context(), sid, id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ListHandler[T, D]) UpdateDraft(c *gin.Context) {
	sid, ok := mustSessionID(c)
	if !ok {
		return
	}
	var req DraftFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	d, err := h.editor.UpdateDraft(c.Request.Context(), sid, req.Field, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ListHandler[T, D]) Save(c *gin.Context) {
	sid, ok := mustSessionID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	item, err := h.editor.Save(c.Request.Context(), sid, id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ListHandler[T, D]) Cancel(c *gin.Context) {
	sid, ok := mustSessionID(c)
	if !ok {
		return
	}
	h.editor.Cancel(c.Request.Context(), sid)
	c.Status(http.StatusNoContent)
}

func (h *ListHandler[T, D]) Delete(c *gin.Context) {
	sid, ok := mustSessionID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.editor.Delete(c.Request.Context(), sid, id, confirmed(c)); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ListHandler[T, D]) register(g *gin.RouterGroup) {
	g.POST("", h.Add)
	g.PATCH("/draft", h.UpdateDraft)
	g.POST("/cancel", h.Cancel)
	g.POST("/:id/edit", h.BeginEdit)
	g.POST("/:id/save", h.Save)
	g.DELETE("/:id", h.Delete)
}
