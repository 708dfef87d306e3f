package editor

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/skill"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// SkillsEditor edits the tag list either as one comma separated field or tag by tag.
type SkillsEditor struct {
	store      *state.Store
	workspaces *Workspaces
}

func NewSkillsEditor(store *state.Store, workspaces *Workspaces) *SkillsEditor {
	return &SkillsEditor{store: store, workspaces: workspaces}
}

func (e *SkillsEditor) BeginEdit(_ context.Context, sessionID uuid.UUID) string {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	text := strings.Join(e.store.Current().Skills, ", ")
	ws.drafts[content.SectionSkills] = &text
	return text
}

func (e *SkillsEditor) UpdateDraft(_ context.Context, sessionID uuid.UUID, value string) (string, error) {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	d, ok := draftOf[*string](ws, content.SectionSkills)
	if !ok {
		return "", noDraft(content.SectionSkills)
	}
	*d = value
	return value, nil
}

func (e *SkillsEditor) Save(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	d, ok := draftOf[*string](ws, content.SectionSkills)
	if !ok {
		return nil, noDraft(content.SectionSkills)
	}
	skills := skill.Normalize(strings.Split(*d, ","))
	st, err := e.store.Update(ctx, func(st content.State) (content.State, error) {
		st.Skills = skills
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	delete(ws.drafts, content.SectionSkills)
	return st.Skills, nil
}

func (e *SkillsEditor) Cancel(_ context.Context, sessionID uuid.UUID) {
	ws := e.workspaces.For(sessionID)
	ws.mu.Lock()
	delete(ws.drafts, content.SectionSkills)
	ws.mu.Unlock()
}

// Add appends one tag. Blank or already present tags leave the list as it is.
func (e *SkillsEditor) Add(ctx context.Context, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	st, err := e.store.Update(ctx, func(st content.State) (content.State, error) {
		if tag == "" || skill.Contains(st.Skills, tag) {
			return st, nil
		}
		st.Skills = append(st.Skills, tag)
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return st.Skills, nil
}

func (e *SkillsEditor) Delete(ctx context.Context, tag string, confirmed bool) ([]string, error) {
	if !confirmed {
		return nil, notConfirmed()
	}
	st, err := e.store.Update(ctx, func(st content.State) (content.State, error) {
		if !skill.Contains(st.Skills, tag) {
			return st, apperror.NewNotFound("Skill", tag)
		}
		kept := make([]string, 0, len(st.Skills)-1)
		for _, s := range st.Skills {
			if s != tag {
				kept = append(kept, s)
			}
		}
		st.Skills = kept
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return st.Skills, nil
}
