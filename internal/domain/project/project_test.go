package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTech(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Go, Docker ,  Kubernetes", []string{"Go", "Docker", "Kubernetes"}},
		{" , ,", []string{}},
		{"", []string{}},
		{"Terraform,,AWS,", []string{"Terraform", "AWS"}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseTech(tc.in), tc.in)
	}
}

func TestTechTextRoundTrip(t *testing.T) {
	tech := []string{"GitHub Actions", "Jenkins"}
	assert.Equal(t, "GitHub Actions, Jenkins", TechText(tech))
	assert.Equal(t, tech, ParseTech(TechText(tech)))
}

func TestValidate(t *testing.T) {
	p := Project{ID: 1, Title: "Alpha", Tech: []string{"Go"}}
	assert.NoError(t, p.Validate())

	p.Title = ""
	assert.Error(t, p.Validate())

	p = Project{ID: 1, Title: "Alpha", Tech: []string{""}}
	assert.Error(t, p.Validate())
}

func TestCloneIsDeep(t *testing.T) {
	p := Project{ID: 1, Tech: []string{"Go"}}
	c := p.Clone()
	c.Tech[0] = "Rust"
	assert.Equal(t, "Go", p.Tech[0])
}
