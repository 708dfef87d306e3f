// Package editor implements the section editors. Each admin session gets its own
// workspace of drafts; only Save, Add and Delete reach the shared state store.
package editor

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// Workspace holds the open drafts of one session, at most one per section.
type Workspace struct {
	mu     sync.Mutex
	drafts map[content.Section]any
}

type Workspaces struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*Workspace
}

func NewWorkspaces() *Workspaces {
	return &Workspaces{byID: make(map[uuid.UUID]*Workspace)}
}

// For returns the workspace of a session, creating it on first use.
func (w *Workspaces) For(sessionID uuid.UUID) *Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()
	ws, ok := w.byID[sessionID]
	if !ok {
		ws = &Workspace{drafts: make(map[content.Section]any)}
		w.byID[sessionID] = ws
	}
	return ws
}

// Discard drops every draft of the session.
func (w *Workspaces) Discard(sessionID uuid.UUID) {
	w.mu.Lock()
	delete(w.byID, sessionID)
	w.mu.Unlock()
}

func draftOf[D any](ws *Workspace, sec content.Section) (D, bool) {
	d, ok := ws.drafts[sec].(D)
	return d, ok
}

func noDraft(sec content.Section) error {
	return apperror.NewAppError(apperror.ErrConflict, "Nothing is being edited",
		fmt.Sprintf("no open %s draft", sec), nil)
}

func notConfirmed() error {
	return apperror.NewInvalidInput("deletion must be confirmed", nil)
}

func invalidDraft(err error) error {
	return apperror.NewInvalidInput(err.Error(), err)
}
