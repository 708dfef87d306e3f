package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio/pkg/apperror"
)

// Mode is the admin View/Edit switch. Editors only accept calls in ModeEdit.
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeView, ModeEdit:
		return Mode(s), nil
	}
	return "", apperror.NewInvalidInput(fmt.Sprintf("unknown mode %q", s), nil)
}

type Session struct {
	ID        uuid.UUID `json:"id"`
	Mode      Mode      `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

func (s Session) AdminMode() bool { return s.Mode == ModeEdit }

func (s Session) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionRegistry keeps the authenticated sessions of this process. A session
// lives as long as the token issued for it; ttl <= 0 never expires.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{sessions: make(map[uuid.UUID]Session), ttl: ttl, now: time.Now}
}

// Open starts an authenticated session in edit mode.
func (r *SessionRegistry) Open() Session {
	now := r.now().UTC()
	s := Session{ID: uuid.New(), Mode: ModeEdit, CreatedAt: now}
	if r.ttl > 0 {
		s.ExpiresAt = now.Add(r.ttl)
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns a live session. An expired one is dropped on the way.
func (r *SessionRegistry) Get(id uuid.UUID) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live(id)
}

func (r *SessionRegistry) SetMode(id uuid.UUID, mode Mode) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.live(id)
	if !ok {
		return Session{}, apperror.NewUnauthorized("session has ended", nil)
	}
	s.Mode = mode
	r.sessions[id] = s
	return s, nil
}

func (r *SessionRegistry) Close(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Sweep removes every expired session and returns their ids.
func (r *SessionRegistry) Sweep() []uuid.UUID {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []uuid.UUID
	for id, s := range r.sessions {
		if s.expired(now) {
			delete(r.sessions, id)
			out = append(out, id)
		}
	}
	return out
}

// RunSweeper sweeps on every tick until ctx ends, discarding the drafts of
// each expired session.
func (r *SessionRegistry) RunSweeper(ctx context.Context, interval time.Duration, drafts DraftDiscarder) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range r.Sweep() {
				if drafts != nil {
					drafts.Discard(id)
				}
			}
		}
	}
}

// live must be called with mu held.
func (r *SessionRegistry) live(id uuid.UUID) (Session, bool) {
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, false
	}
	if s.expired(r.now()) {
		delete(r.sessions, id)
		return Session{}, false
	}
	return s, true
}
