package content

import (
	"time"

	"github.com/khoahotran/portfolio/internal/domain/experience"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/project"
)

// NoResume is the placeholder resume reference meaning "nothing uploaded".
const NoResume = "#"

// Section names one independently persisted part of the state.
type Section string

const (
	SectionProfile      Section = "profile"
	SectionProjects     Section = "projects"
	SectionSkills       Section = "skills"
	SectionExperiences  Section = "experiences"
	SectionProfileImage Section = "profile_image"
	SectionResume       Section = "resume"
)

// AllSections is the persistence order used when every section is written.
var AllSections = []Section{
	SectionProjects, SectionExperiences, SectionSkills,
	SectionProfile, SectionProfileImage, SectionResume,
}

// State is the whole editable portfolio. It is a value: editors take one and return
// the next, and the store decides what to persist.
type State struct {
	Profile      profile.Profile         `json:"profile"`
	Projects     []project.Project       `json:"projects"`
	Skills       []string                `json:"skills"`
	Experiences  []experience.Experience `json:"experiences"`
	ProfileImage *string                 `json:"profileImage"`
	ResumeURL    string                  `json:"resumeUrl"`
}

// Snapshot is a State stamped with the time it was exported or built.
type Snapshot struct {
	LastUpdated int64 `json:"lastUpdated"`
	State
}

func (s Snapshot) Time() time.Time {
	return time.UnixMilli(s.LastUpdated)
}

func (s State) Clone() State {
	c := s
	c.Projects = make([]project.Project, len(s.Projects))
	for i, p := range s.Projects {
		c.Projects[i] = p.Clone()
	}
	c.Skills = append([]string{}, s.Skills...)
	c.Experiences = append([]experience.Experience{}, s.Experiences...)
	if s.ProfileImage != nil {
		img := *s.ProfileImage
		c.ProfileImage = &img
	}
	return c
}

func (s State) HasResume() bool {
	return s.ResumeURL != "" && s.ResumeURL != NoResume
}

// ProjectIndex returns the position of id in the project list or -1.
func (s State) ProjectIndex(id int64) int {
	for i, p := range s.Projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s State) ExperienceIndex(id int64) int {
	for i, e := range s.Experiences {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// NextID derives an id from now in milliseconds, bumping it until taken reports false.
func NextID(now time.Time, taken func(int64) bool) int64 {
	id := now.UnixMilli()
	for taken(id) {
		id++
	}
	return id
}
