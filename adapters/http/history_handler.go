package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/history"
)

type HistoryHandler struct {
	listUseCase *history.ListHistoryUseCase
}

func NewHistoryHandler(uc *history.ListHistoryUseCase) *HistoryHandler {
	return &HistoryHandler{listUseCase: uc}
}

func (h *HistoryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := h.listUseCase.Execute(c.Request.Context(), history.ListInput{Page: page, Limit: limit})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events": out.Events,
		"page":   out.Page,
		"limit":  out.Limit,
	})
}
