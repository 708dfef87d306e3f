package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/editor"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type SkillHandler struct {
	editor *editor.SkillsEditor
	logger logger.Logger
}

func NewSkillHandler(e *editor.SkillsEditor, log logger.Logger) *SkillHandler {
	return &SkillHandler{editor: e, logger: log}
}

func (h *SkillHandler) Add(c *gin.Context) {
	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("tag is required", err))
		return
	}
	skills, err := h.editor.Add(c.Request.Context(), req.Tag)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *SkillHandler) Delete(c *gin.Context) {
	skills, err := h.editor.Delete(c.Request.Context(), c.Param("tag"), confirmed(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *SkillHandler) BeginEdit(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": h.editor.BeginEdit(c.Request.Context(), id)})
}

func (h *SkillHandler) UpdateDraft(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	var req SkillsDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	v, err := h.editor.UpdateDraft(c.Request.Context(), id, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": v})
}

func (h *SkillHandler) Save(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	skills, err := h.editor.Save(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *SkillHandler) Cancel(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	h.editor.Cancel(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}
