package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/backup"
)

type BackupHandler struct {
	backupUseCase *backup.BackupUseCase
}

func NewBackupHandler(uc *backup.BackupUseCase) *BackupHandler {
	return &BackupHandler{backupUseCase: uc}
}

func (h *BackupHandler) Create(c *gin.Context) {
	out, err := h.backupUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, out)
}
