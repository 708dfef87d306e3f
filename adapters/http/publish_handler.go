package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/publish"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type PublishHandler struct {
	configUseCase  *publish.ConfigUseCase
	publishUseCase *publish.PublishUseCase
	logger         logger.Logger
}

func NewPublishHandler(configUC *publish.ConfigUseCase, publishUC *publish.PublishUseCase, log logger.Logger) *PublishHandler {
	return &PublishHandler{configUseCase: configUC, publishUseCase: publishUC, logger: log}
}

func (h *PublishHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ToGitHubConfigDTO(h.configUseCase.Get(c.Request.Context())))
}

func (h *PublishHandler) SaveConfig(c *gin.Context) {
	var req GitHubConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	// The token is never sent back to clients, so an empty one keeps the stored token.
	ctx := c.Request.Context()
	h.configUseCase.Save(ctx, mergeConfig(req.toConfig(), h.configUseCase.Get(ctx)))
	c.JSON(http.StatusOK, ToGitHubConfigDTO(h.configUseCase.Get(c.Request.Context())))
}

// Publish starts a push in the background. Fields left empty in the body are
// taken from the stored config.
func (h *PublishHandler) Publish(c *gin.Context) {
	var req GitHubConfigRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.NewInvalidInput("invalid request data", err))
			return
		}
	}
	cfg := mergeConfig(req.toConfig(), h.configUseCase.Get(c.Request.Context()))

	if err := h.publishUseCase.Start(c.Request.Context(), cfg); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, h.publishUseCase.Status())
}

func (h *PublishHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.publishUseCase.Status())
}

func mergeConfig(in, stored publish.GitHubConfig) publish.GitHubConfig {
	if in.Owner == "" {
		in.Owner = stored.Owner
	}
	if in.Repo == "" {
		in.Repo = stored.Repo
	}
	if in.Token == "" {
		in.Token = stored.Token
	}
	if in.Path == "" {
		in.Path = stored.Path
	}
	return in
}
