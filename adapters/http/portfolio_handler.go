package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/publish"
	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/codec"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type PortfolioHandler struct {
	store         *state.Store
	exportUseCase *publish.ExportUseCase
	logger        logger.Logger
}

func NewPortfolioHandler(store *state.Store, exportUC *publish.ExportUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{store: store, exportUseCase: exportUC, logger: log}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, ToPortfolioDTO(h.store.Current()))
}

// Export returns the generated defaults file for manual copy.
func (h *PortfolioHandler) Export(c *gin.Context) {
	out, err := h.exportUseCase.Generate(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	contentType := "text/typescript; charset=utf-8"
	if out.Format == codec.FormatYAML {
		contentType = "application/yaml; charset=utf-8"
	}
	c.Header("X-Last-Updated", formatInt(out.Snapshot.LastUpdated))
	c.Data(http.StatusOK, contentType, out.Content)
}

func (h *PortfolioHandler) Reset(c *gin.Context) {
	if !confirmed(c) {
		c.Error(apperror.NewInvalidInput("reset must be confirmed with confirm=true", nil))
		return
	}
	st := h.store.Reset(c.Request.Context())
	c.JSON(http.StatusOK, ToPortfolioDTO(st))
}
