package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

type ContactHandler struct {
	contactUseCase *contactUC.ContactUseCase
}

func NewContactHandler(uc *contactUC.ContactUseCase) *ContactHandler {
	return &ContactHandler{contactUseCase: uc}
}

func (h *ContactHandler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("name, email and message are required", err))
		return
	}
	out, err := h.contactUseCase.Execute(c.Request.Context(), contactUC.Input{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}
