package publish

import (
	"sync"
	"time"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

type Status struct {
	Phase     Phase     `json:"status"`
	Message   string    `json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusTracker holds the progress of the latest publish attempt.
type StatusTracker struct {
	mu  sync.RWMutex
	cur Status
}

func NewStatusTracker() *StatusTracker {
	return &StatusTracker{cur: Status{Phase: PhaseIdle, UpdatedAt: time.Now().UTC()}}
}

func (t *StatusTracker) Get() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cur
}

func (t *StatusTracker) set(p Phase, msg string) {
	t.mu.Lock()
	t.cur = Status{Phase: p, Message: msg, UpdatedAt: time.Now().UTC()}
	t.mu.Unlock()
}
