package profile

import (
	"fmt"

	"github.com/khoahotran/portfolio/internal/domain"
)

type Socials struct {
	GitHub   string `json:"github" yaml:"github"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
}

type Stats struct {
	YearsExp string `json:"yearsExp" yaml:"yearsExp"`
	Certs    string `json:"certs" yaml:"certs"`
	Uptime   string `json:"uptime" yaml:"uptime"`
}

// Profile is the single owner record shown in the hero section.
type Profile struct {
	Name          string  `json:"name" yaml:"name" validate:"required"`
	Role          string  `json:"role" yaml:"role"`
	Tagline       string  `json:"tagline" yaml:"tagline"`
	Bio           string  `json:"bio" yaml:"bio"`
	Location      string  `json:"location" yaml:"location"`
	Email         string  `json:"email" yaml:"email" validate:"required,email"`
	FormActionURL string  `json:"formActionUrl" yaml:"formActionUrl" validate:"omitempty,url"`
	Socials       Socials `json:"socials" yaml:"socials"`
	Stats         Stats   `json:"stats" yaml:"stats"`
}

func (p *Profile) Validate() error {
	return domain.Validator().Struct(p)
}

// Set assigns one editable field. Nested fields use dotted names ("socials.github").
func (p *Profile) Set(field, value string) error {
	switch field {
	case "name":
		p.Name = value
	case "role":
		p.Role = value
	case "tagline":
		p.Tagline = value
	case "bio":
		p.Bio = value
	case "location":
		p.Location = value
	case "email":
		p.Email = value
	case "formActionUrl":
		p.FormActionURL = value
	case "socials.github":
		p.Socials.GitHub = value
	case "socials.linkedin":
		p.Socials.LinkedIn = value
	case "stats.yearsExp":
		p.Stats.YearsExp = value
	case "stats.certs":
		p.Stats.Certs = value
	case "stats.uptime":
		p.Stats.Uptime = value
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return nil
}
