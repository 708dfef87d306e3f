package auth

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// MsgIncorrectPassword is the message shown when the gate rejects a secret.
const MsgIncorrectPassword = "Incorrect password"

type LoginUseCase struct {
	verifier service.CredentialVerifier
	sessions *SessionRegistry
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(verifier service.CredentialVerifier, sessions *SessionRegistry, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		verifier: verifier,
		sessions: sessions,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Password string
}

type LoginOutput struct {
	AccessToken string
	Session     Session
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	_, span := tracer.Start(ctx, "Login")
	defer span.End()

	if !uc.verifier.Verify(input.Password) {
		err := apperror.NewAppError(apperror.ErrUnauthorized, MsgIncorrectPassword, "admin secret rejected", nil)
		span.RecordError(err)
		return nil, err
	}

	s := uc.sessions.Open()
	token, err := uc.jwtSvc.GenerateToken(s.ID)
	if err != nil {
		uc.sessions.Close(s.ID)
		uc.logger.Error("Failed to generate token", err, zap.String("session_id", s.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("session_id", s.ID.String()))
	uc.logger.Info("Admin session opened", zap.String("session_id", s.ID.String()))
	return &LoginOutput{AccessToken: token, Session: s}, nil
}
