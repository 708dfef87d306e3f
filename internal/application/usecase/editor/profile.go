package editor

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/profile"
)

type ProfileEditor struct {
	store      *state.Store
	workspaces *Workspaces
}

func NewProfileEditor(store *state.Store, workspaces *Workspaces) *ProfileEditor {
	return &ProfileEditor{store: store, workspaces: workspaces}
}

func (e *ProfileEditor) BeginEdit(_ context.Context, sessionID uuid.UUID) profile.Profile {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	p := e.store.Current().Profile
	ws.drafts[content.SectionProfile] = &p
	return p
}

func (e *ProfileEditor) UpdateDraft(_ context.Context, sessionID uuid.UUID, field, value string) (profile.Profile, error) {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	d, ok := draftOf[*profile.Profile](ws, content.SectionProfile)
	if !ok {
		return profile.Profile{}, noDraft(content.SectionProfile)
	}
	if err := d.Set(field, value); err != nil {
		return profile.Profile{}, invalidDraft(err)
	}
	return *d, nil
}

func (e *ProfileEditor) Save(ctx context.Context, sessionID uuid.UUID) (profile.Profile, error) {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	d, ok := draftOf[*profile.Profile](ws, content.SectionProfile)
	if !ok {
		return profile.Profile{}, noDraft(content.SectionProfile)
	}
	if err := d.Validate(); err != nil {
		return profile.Profile{}, invalidDraft(err)
	}
	saved := *d
	if _, err := e.store.Update(ctx, func(st content.State) (content.State, error) {
		st.Profile = saved
		return st, nil
	}); err != nil {
		return profile.Profile{}, err
	}
	delete(ws.drafts, content.SectionProfile)
	return saved, nil
}

func (e *ProfileEditor) Cancel(_ context.Context, sessionID uuid.UUID) {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	delete(ws.drafts, content.SectionProfile)
	ws.mu.Unlock()
}
