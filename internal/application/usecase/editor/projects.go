package editor

import (
	"strconv"
	"time"

	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/project"
)

// ProjectDraft is a project under edit. Tech tags stay as free text until save.
type ProjectDraft struct {
	project.Project
	TechText string `json:"techText"`
}

func openProject(p project.Project) *ProjectDraft {
	return &ProjectDraft{Project: p.Clone(), TechText: project.TechText(p.Tech)}
}

func (d *ProjectDraft) ItemID() int64 { return d.ID }

func (d *ProjectDraft) Set(field, value string) error {
	if field == "tech" {
		d.TechText = value
		return nil
	}
	return d.Project.Set(field, value)
}

func (d *ProjectDraft) Commit() (project.Project, error) {
	p := d.Project.Clone()
	p.Tech = project.ParseTech(d.TechText)
	if err := p.Validate(); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

func (d *ProjectDraft) Clone() *ProjectDraft {
	c := *d
	c.Project = d.Project.Clone()
	return &c
}

func newProject(id int64, now time.Time) project.Project {
	return project.Project{
		ID:        id,
		Title:     "New Project",
		Desc:      "",
		Tech:      []string{},
		Link:      "#",
		LinkLabel: "View repo",
		Updated:   strconv.Itoa(now.Year()),
	}
}

type ProjectEditor = ListEditor[project.Project, *ProjectDraft]

func NewProjectEditor(store *state.Store, workspaces *Workspaces, now func() time.Time) *ProjectEditor {
	if now == nil {
		now = time.Now
	}
	return &ProjectEditor{
		section:    content.SectionProjects,
		resource:   "Project",
		store:      store,
		workspaces: workspaces,
		now:        now,
		items:      func(st content.State) []project.Project { return st.Projects },
		setItems:   func(st *content.State, v []project.Project) { st.Projects = v },
		idOf:       project.Project.Key,
		open:       openProject,
		blank:      newProject,
	}
}
