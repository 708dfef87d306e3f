package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/pkg/apperror"
)

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid id format", err))
		return 0, false
	}
	return id, true
}

func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
