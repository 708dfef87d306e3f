package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/editor"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type ProfileHandler struct {
	editor *editor.ProfileEditor
	logger logger.Logger
}

func NewProfileHandler(e *editor.ProfileEditor, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{editor: e, logger: log}
}

func (h *ProfileHandler) BeginEdit(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.editor.BeginEdit(c.Request.Context(), id))
}

func (h *ProfileHandler) UpdateDraft(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	var req DraftFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	d, err := h.editor.UpdateDraft(c.Request.Context(), id, req.Field, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ProfileHandler) Save(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	p, err := h.editor.Save(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Cancel(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	h.editor.Cancel(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}
