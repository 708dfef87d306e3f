package editor

import (
	"time"

	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/experience"
)

type ExperienceDraft struct {
	experience.Experience
}

func openExperience(e experience.Experience) *ExperienceDraft {
	return &ExperienceDraft{Experience: e}
}

func (d *ExperienceDraft) ItemID() int64 { return d.ID }

func (d *ExperienceDraft) Commit() (experience.Experience, error) {
	e := d.Experience
	if err := e.Validate(); err != nil {
		return experience.Experience{}, err
	}
	return e, nil
}

func (d *ExperienceDraft) Clone() *ExperienceDraft {
	c := *d
	return &c
}

func newExperience(id int64, _ time.Time) experience.Experience {
	return experience.Experience{
		ID:      id,
		Title:   "New Role",
		Company: "Company",
		Date:    "YYYY — YYYY",
		Desc:    "",
		Type:    experience.TypeFullTime,
	}
}

type ExperienceEditor = ListEditor[experience.Experience, *ExperienceDraft]

func NewExperienceEditor(store *state.Store, workspaces *Workspaces, now func() time.Time) *ExperienceEditor {
	if now == nil {
		now = time.Now
	}
	return &ExperienceEditor{
		section:    content.SectionExperiences,
		resource:   "Experience",
		store:      store,
		workspaces: workspaces,
		now:        now,
		items:      func(st content.State) []experience.Experience { return st.Experiences },
		setItems:   func(st *content.State, v []experience.Experience) { st.Experiences = v },
		idOf:       experience.Experience.Key,
		open:       openExperience,
		blank:      newExperience,
	}
}
