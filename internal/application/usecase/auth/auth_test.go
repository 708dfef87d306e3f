package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type discardRecorder struct{ ids []uuid.UUID }

func (d *discardRecorder) Discard(id uuid.UUID) { d.ids = append(d.ids, id) }

func newLogin(secret string) (*LoginUseCase, *SessionRegistry, *auth.JWTService) {
	sessions := NewSessionRegistry(time.Hour)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewLoginUseCase(auth.NewStaticVerifier(secret), sessions, jwtSvc, logger.NewNop()), sessions, jwtSvc
}

func TestLoginAcceptsConfiguredSecret(t *testing.T) {
	uc, sessions, jwtSvc := newLogin("letmein")

	out, err := uc.Execute(context.Background(), LoginInput{Password: "letmein"})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.Session.ID, claims.SessionID)

	s, ok := sessions.Get(out.Session.ID)
	require.True(t, ok)
	assert.True(t, s.AdminMode(), "a fresh session starts in edit mode")
}

func TestLoginRejectsWrongSecret(t *testing.T) {
	uc, _, _ := newLogin("letmein")

	for _, pw := range []string{"", "LETMEIN", "letmein "} {
		_, err := uc.Execute(context.Background(), LoginInput{Password: pw})
		require.Error(t, err, pw)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		assert.Equal(t, MsgIncorrectPassword, apperror.Message(err))
	}
}

func TestLoginWithHashVerifier(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	uc := NewLoginUseCase(auth.NewHashVerifier(hash), NewSessionRegistry(time.Hour), auth.NewJWTService("k", time.Hour), logger.NewNop())

	_, err = uc.Execute(context.Background(), LoginInput{Password: "s3cret"})
	assert.NoError(t, err)
	_, err = uc.Execute(context.Background(), LoginInput{Password: "wrong"})
	assert.Error(t, err)
}

func TestModeSwitchAndLogout(t *testing.T) {
	sessions := NewSessionRegistry(time.Hour)
	drafts := &discardRecorder{}
	logout := NewLogoutUseCase(sessions, drafts, logger.NewNop())

	s := sessions.Open()
	got, err := sessions.SetMode(s.ID, ModeView)
	require.NoError(t, err)
	assert.False(t, got.AdminMode())

	logout.Execute(context.Background(), s.ID)
	_, ok := sessions.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, []uuid.UUID{s.ID}, drafts.ids)

	_, err = sessions.SetMode(s.ID, ModeEdit)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("edit")
	require.NoError(t, err)
	assert.Equal(t, ModeEdit, m)

	_, err = ParseMode("admin")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestSessionsExpireWithTheirToken(t *testing.T) {
	sessions := NewSessionRegistry(time.Hour)
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return clock }

	s := sessions.Open()
	assert.Equal(t, clock.Add(time.Hour), s.ExpiresAt)

	clock = clock.Add(59 * time.Minute)
	_, ok := sessions.Get(s.ID)
	assert.True(t, ok)

	clock = clock.Add(time.Minute)
	_, ok = sessions.Get(s.ID)
	assert.False(t, ok, "a session ends when its token does")
	_, err := sessions.SetMode(s.ID, ModeView)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestSweepDropsExpiredSessionsAndDrafts(t *testing.T) {
	sessions := NewSessionRegistry(time.Minute)
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return clock }

	old := sessions.Open()
	clock = clock.Add(30 * time.Second)
	fresh := sessions.Open()
	clock = clock.Add(45 * time.Second)

	assert.Equal(t, []uuid.UUID{old.ID}, sessions.Sweep())
	assert.Empty(t, sessions.Sweep())
	_, ok := sessions.Get(fresh.ID)
	assert.True(t, ok)

	drafts := &discardRecorder{}
	clock = clock.Add(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sessions.RunSweeper(ctx, time.Millisecond, drafts)
		close(done)
	}()
	assert.Eventually(t, func() bool {
		sessions.mu.Lock()
		defer sessions.mu.Unlock()
		return len(sessions.sessions) == 0
	}, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, []uuid.UUID{fresh.ID}, drafts.ids)
}

func TestSessionsWithoutTTLNeverExpire(t *testing.T) {
	sessions := NewSessionRegistry(0)
	s := sessions.Open()
	assert.True(t, s.ExpiresAt.IsZero())
	sessions.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }
	_, ok := sessions.Get(s.ID)
	assert.True(t, ok)
}
