package http

import (
	"github.com/khoahotran/portfolio/internal/application/usecase/editor"
	"github.com/khoahotran/portfolio/internal/domain/project"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type ProjectHandler = ListHandler[project.Project, *editor.ProjectDraft]

func NewProjectHandler(e *editor.ProjectEditor, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{editor: e, logger: log}
}
