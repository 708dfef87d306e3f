package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/khoahotran/portfolio/internal/application/usecase/media"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type MediaHandler struct {
	uploadUseCase *mediaUC.UploadUseCase
	maxUpload     int64
	logger        logger.Logger
}

// NewMediaHandler reads at most maxUpload bytes of any uploaded file; the use
// case applies the per-kind limits.
func NewMediaHandler(uploadUC *mediaUC.UploadUseCase, maxUpload int64, log logger.Logger) *MediaHandler {
	return &MediaHandler{uploadUseCase: uploadUC, maxUpload: maxUpload, logger: log}
}

func (h *MediaHandler) UploadImage(c *gin.Context) {
	in, ok := h.readFile(c)
	if !ok {
		return
	}
	ref, err := h.uploadUseCase.UploadImage(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profileImage": ref})
}

func (h *MediaHandler) RemoveImage(c *gin.Context) {
	if err := h.uploadUseCase.RemoveImage(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MediaHandler) UploadResume(c *gin.Context) {
	in, ok := h.readFile(c)
	if !ok {
		return
	}
	ref, err := h.uploadUseCase.UploadResume(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumeUrl": ref})
}

func (h *MediaHandler) readFile(c *gin.Context) (mediaUC.UploadInput, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("file is required", err))
		return mediaUC.UploadInput{}, false
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("cannot open uploaded file", err))
		return mediaUC.UploadInput{}, false
	}
	defer f.Close()

	// One byte past the cap lets the use case see the file is too large.
	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		c.Error(apperror.NewInternal("cannot read uploaded file", err))
		return mediaUC.UploadInput{}, false
	}
	return mediaUC.UploadInput{Filename: fileHeader.Filename, Data: data}, true
}
