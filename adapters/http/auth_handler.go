package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type AuthHandler struct {
	loginUseCase  *authUC.LoginUseCase
	logoutUseCase *authUC.LogoutUseCase
	sessions      *authUC.SessionRegistry
	logger        logger.Logger
}

func NewAuthHandler(loginUC *authUC.LoginUseCase, logoutUC *authUC.LogoutUseCase, sessions *authUC.SessionRegistry, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase:  loginUC,
		logoutUseCase: logoutUC,
		sessions:      sessions,
		logger:        log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("password is required", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{Password: req.Password})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": output.AccessToken,
		"session":      output.Session,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	h.logoutUseCase.Execute(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) GetSession(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	s, found := h.sessions.Get(id)
	if !found {
		c.Error(apperror.NewUnauthorized("session has ended", nil))
		return
	}
	c.JSON(http.StatusOK, s)
}

// SetMode flips the View/Edit switch of the current session.
func (h *AuthHandler) SetMode(c *gin.Context) {
	id, ok := mustSessionID(c)
	if !ok {
		return
	}
	var req SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("mode is required", err))
		return
	}
	mode, err := authUC.ParseMode(req.Mode)
	if err != nil {
		c.Error(err)
		return
	}
	s, err := h.sessions.SetMode(id, mode)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}
