package auth

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/pkg/logger"
)

// DraftDiscarder drops whatever unsaved edits a session holds.
type DraftDiscarder interface {
	Discard(sessionID uuid.UUID)
}

type LogoutUseCase struct {
	sessions *SessionRegistry
	drafts   DraftDiscarder
	logger   logger.Logger
}

func NewLogoutUseCase(sessions *SessionRegistry, drafts DraftDiscarder, log logger.Logger) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, drafts: drafts, logger: log}
}

// Execute ends the session. Open drafts are discarded, saved content is untouched.
func (uc *LogoutUseCase) Execute(_ context.Context, sessionID uuid.UUID) {
	uc.sessions.Close(sessionID)
	if uc.drafts != nil {
		uc.drafts.Discard(sessionID)
	}
	uc.logger.Info("Admin session closed", zap.String("session_id", sessionID.String()))
}
