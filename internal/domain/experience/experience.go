package experience

import (
	"fmt"

	"github.com/khoahotran/portfolio/internal/domain"
)

const (
	TypeFullTime = "Full-time"
	TypePartTime = "Part-time"
	TypeIntern   = "Intern"
	TypeContract = "Contract"
)

// Types lists the employment labels in the order the editor offers them.
var Types = []string{TypeFullTime, TypePartTime, TypeIntern, TypeContract}

type Experience struct {
	ID      int64  `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title" validate:"required"`
	Company string `json:"company" yaml:"company" validate:"required"`
	Date    string `json:"date" yaml:"date"`
	Desc    string `json:"desc" yaml:"desc"`
	Type    string `json:"type" yaml:"type" validate:"oneof=Full-time Part-time Intern Contract"`
}

func (e Experience) Key() int64 { return e.ID }

func (e *Experience) Validate() error {
	return domain.Validator().Struct(e)
}

func (e *Experience) Set(field, value string) error {
	switch field {
	case "title":
		e.Title = value
	case "company":
		e.Company = value
	case "date":
		e.Date = value
	case "desc":
		e.Desc = value
	case "type":
		if !IsValidType(value) {
			return fmt.Errorf("invalid employment type %q", value)
		}
		e.Type = value
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return nil
}

func IsValidType(t string) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}
