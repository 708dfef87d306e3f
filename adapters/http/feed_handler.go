package http

import (
	"github.com/gin-gonic/gin"

	feedUC "github.com/khoahotran/portfolio/internal/application/usecase/feed"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type FeedHandler struct {
	feedUseCase *feedUC.ProjectsFeedUseCase
	logger      logger.Logger
}

func NewFeedHandler(uc *feedUC.ProjectsFeedUseCase, log logger.Logger) *FeedHandler {
	return &FeedHandler{feedUseCase: uc, logger: log}
}

func (h *FeedHandler) RSS(c *gin.Context) {
	feed := h.feedUseCase.Execute(c.Request.Context())
	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}

func (h *FeedHandler) Atom(c *gin.Context) {
	feed := h.feedUseCase.Execute(c.Request.Context())
	c.Header("Content-Type", "application/atom+xml; charset=utf-8")
	if err := feed.WriteAtom(c.Writer); err != nil {
		h.logger.Error("Failed to write Atom feed to response", err)
	}
}
