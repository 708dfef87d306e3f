package project

import (
	"fmt"
	"strings"

	"github.com/khoahotran/portfolio/internal/domain"
)

type Project struct {
	ID        int64    `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title" validate:"required"`
	Desc      string   `json:"desc" yaml:"desc"`
	Tech      []string `json:"tech" yaml:"tech" validate:"dive,required"`
	Link      string   `json:"link" yaml:"link"`
	LinkLabel string   `json:"linkLabel" yaml:"linkLabel"`
	Updated   string   `json:"updated" yaml:"updated"`
}

func (p Project) Key() int64 { return p.ID }

func (p *Project) Validate() error {
	return domain.Validator().Struct(p)
}

// Set assigns one editable scalar field. Tech tags go through ParseTech instead.
func (p *Project) Set(field, value string) error {
	switch field {
	case "title":
		p.Title = value
	case "desc":
		p.Desc = value
	case "link":
		p.Link = value
	case "linkLabel":
		p.LinkLabel = value
	case "updated":
		p.Updated = value
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return nil
}

// ParseTech splits a comma separated tag field, trimming and dropping empties.
func ParseTech(text string) []string {
	parts := strings.Split(text, ",")
	tech := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			tech = append(tech, t)
		}
	}
	return tech
}

func TechText(tech []string) string {
	return strings.Join(tech, ", ")
}

func (p Project) Clone() Project {
	c := p
	c.Tech = append([]string(nil), p.Tech...)
	if c.Tech == nil {
		c.Tech = []string{}
	}
	return c
}
