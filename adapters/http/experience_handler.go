package http

import (
	"github.com/khoahotran/portfolio/internal/application/usecase/editor"
	"github.com/khoahotran/portfolio/internal/domain/experience"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type ExperienceHandler = ListHandler[experience.Experience, *editor.ExperienceDraft]

func NewExperienceHandler(e *editor.ExperienceEditor, log logger.Logger) *ExperienceHandler {
	return &ExperienceHandler{editor: e, logger: log}
}
