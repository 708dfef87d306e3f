// Package codec turns a content snapshot into the source file committed as the
// next build's defaults, and parses such a file back.
package codec

import (
	"fmt"

	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/experience"
	"github.com/khoahotran/portfolio/internal/domain/project"
)

const (
	FormatTypeScript = "typescript"
	FormatYAML       = "yaml"
)

type Codec interface {
	Encode(s content.Snapshot) ([]byte, error)
	Decode(data []byte) (content.Snapshot, error)
	// Format names the codec, as accepted by New.
	Format() string
}

func New(format string) (Codec, error) {
	switch format {
	case FormatTypeScript, "ts", "":
		return TypeScript{}, nil
	case FormatYAML, "yml":
		return YAML{}, nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// normalize replaces nil lists with empty ones so that encoded output never holds null lists.
func normalize(s content.Snapshot) content.Snapshot {
	if s.Projects == nil {
		s.Projects = []project.Project{}
	}
	for i := range s.Projects {
		if s.Projects[i].Tech == nil {
			s.Projects[i].Tech = []string{}
		}
	}
	if s.Skills == nil {
		s.Skills = []string{}
	}
	if s.Experiences == nil {
		s.Experiences = []experience.Experience{}
	}
	return s
}
