package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	GinContextKeySessionID = "sessionID"
)

// ErrorMiddleware renders the last error a handler attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, zap.String("path", c.FullPath()), zap.Int("status", status))
		} else {
			log.Debug("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
		}
		c.JSON(status, appErr.ToJSON())
	}
}

// AuthMiddleware accepts a bearer token only while its session is still open.
func AuthMiddleware(jwtSvc *auth.JWTService, sessions *authUC.SessionRegistry, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Debug("Rejected token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if _, ok := sessions.Get(claims.SessionID); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has ended"})
			return
		}

		c.Set(GinContextKeySessionID, claims.SessionID)
		c.Next()
	}
}

// RequireEditMode guards the editor routes: the session must have admin mode on.
func RequireEditMode(sessions *authUC.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetSessionIDFromGinContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session is required"})
			return
		}
		s, ok := sessions.Get(id)
		if !ok || !s.AdminMode() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Switch to edit mode first"})
			return
		}
		c.Next()
	}
}

func GetSessionIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeySessionID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func mustSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := GetSessionIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session id not found in context"))
	}
	return id, ok
}
