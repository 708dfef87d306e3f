package codec

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/experience"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/project"
)

type yamlDocument struct {
	LastUpdated  int64                   `yaml:"lastUpdated"`
	ProfileImage *string                 `yaml:"profileImage"`
	ResumeURL    string                  `yaml:"resumeUrl"`
	Projects     []project.Project       `yaml:"projects"`
	Skills       []string                `yaml:"skills"`
	Experiences  []experience.Experience `yaml:"experiences"`
	Profile      profile.Profile         `yaml:"profile"`
}

// YAML writes the same record set as a YAML document, for sites that load content data files.
type YAML struct{}

func (YAML) Format() string { return FormatYAML }

func (YAML) Encode(s content.Snapshot) ([]byte, error) {
	s = normalize(s)
	doc := yamlDocument{
		LastUpdated:  s.LastUpdated,
		ProfileImage: s.ProfileImage,
		ResumeURL:    s.ResumeURL,
		Projects:     s.Projects,
		Skills:       s.Skills,
		Experiences:  s.Experiences,
		Profile:      s.Profile,
	}

	var buf bytes.Buffer
	buf.WriteString("# Portfolio content snapshot\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func (YAML) Decode(data []byte) (content.Snapshot, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return content.Snapshot{}, fmt.Errorf("decode yaml: %w", err)
	}
	s := content.Snapshot{
		LastUpdated: doc.LastUpdated,
		State: content.State{
			Profile:      doc.Profile,
			Projects:     doc.Projects,
			Skills:       doc.Skills,
			Experiences:  doc.Experiences,
			ProfileImage: doc.ProfileImage,
			ResumeURL:    doc.ResumeURL,
		},
	}
	return normalize(s), nil
}
