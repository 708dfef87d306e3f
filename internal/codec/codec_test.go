package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/experience"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/project"
)

func sampleSnapshot() content.Snapshot {
	img := "data:image/jpeg;base64,/9j/4AAQSkZJRg=="
	return content.Snapshot{
		LastUpdated: 1760000000123,
		State: content.State{
			Profile: profile.Profile{
				Name:          "Ada Lovelace",
				Role:          "DevOps Engineer",
				Tagline:       "DevOps Engineer • Cloud & Automation",
				Bio:           "Loves <pipelines> & \"quoted\" things; also semicolons;\nand newlines.",
				Location:      "London, UK",
				Email:         "ada@example.com",
				FormActionURL: "https://formspree.io/f/abc",
				Socials:       profile.Socials{GitHub: "https://github.com/ada", LinkedIn: "#"},
				Stats:         profile.Stats{YearsExp: "3+", Certs: "2", Uptime: "99.99%"},
			},
			Projects: []project.Project{
				{ID: 2, Title: "IaC", Desc: "VPC, RDS — EKS", Tech: []string{"Terraform", "Helm"}, Link: "#", LinkLabel: "View repo", Updated: "2025"},
				{ID: 1, Title: "Empty tech", Tech: []string{}, Link: "#"},
			},
			Skills: []string{"AWS", "Kubernetes", "export const X = 1;"},
			Experiences: []experience.Experience{
				{ID: 1, Title: "SRE Intern", Company: "Another Company", Date: "2023 — 2024", Type: experience.TypeIntern},
			},
			ProfileImage: &img,
			ResumeURL:    "data:application/pdf;base64,JVBERi0=",
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []string{FormatTypeScript, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			c, err := New(format)
			require.NoError(t, err)

			want := sampleSnapshot()
			data, err := c.Encode(want)
			require.NoError(t, err)

			got, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRoundTripWithoutImage(t *testing.T) {
	for _, format := range []string{FormatTypeScript, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			c, _ := New(format)
			want := sampleSnapshot()
			want.ProfileImage = nil
			want.ResumeURL = content.NoResume

			data, err := c.Encode(want)
			require.NoError(t, err)
			got, err := c.Decode(data)
			require.NoError(t, err)

			assert.Nil(t, got.ProfileImage)
			assert.Equal(t, content.NoResume, got.ResumeURL)
			assert.Equal(t, want, got)
		})
	}
}

func TestTypeScriptLayout(t *testing.T) {
	data, err := TypeScript{}.Encode(content.Snapshot{LastUpdated: 42, State: content.State{ResumeURL: "#"}})
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "import { Project, Experience, Profile } from \"./types\";\n\nexport const LAST_UPDATED = 42;\n"))
	assert.Contains(t, out, "export const INITIAL_PROFILE_IMAGE: string | null = null;\n")
	assert.Contains(t, out, "export const INITIAL_RESUME_URL: string = \"#\";\n")
	assert.Contains(t, out, "export const INITIAL_PROJECTS: Project[] = [];\n")
	assert.Contains(t, out, "export const INITIAL_SKILLS: string[] = [];\n")
	assert.Contains(t, out, "export const INITIAL_EXPERIENCES: Experience[] = [];\n")
	assert.Contains(t, out, "export const INITIAL_PROFILE: Profile = {\n  \"name\": \"\",")
}

func TestTypeScriptDoesNotEscapeHTML(t *testing.T) {
	s := sampleSnapshot()
	data, err := TypeScript{}.Encode(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Loves <pipelines> & ")
}

func TestEncodeIsDeterministic(t *testing.T) {
	a, err := TypeScript{}.Encode(sampleSnapshot())
	require.NoError(t, err)
	b, err := TypeScript{}.Encode(sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTypeScriptDecodeMissingConstant(t *testing.T) {
	_, err := TypeScript{}.Decode([]byte("export const LAST_UPDATED = 1;\n"))
	assert.ErrorContains(t, err, "missing constant INITIAL_PROFILE_IMAGE")
}

func TestTypeScriptDecodeInvalidValue(t *testing.T) {
	data, err := TypeScript{}.Encode(sampleSnapshot())
	require.NoError(t, err)
	broken := strings.Replace(string(data), "export const INITIAL_SKILLS: string[] = [", "export const INITIAL_SKILLS: string[] = [oops", 1)

	_, err = TypeScript{}.Decode([]byte(broken))
	assert.ErrorContains(t, err, "decode INITIAL_SKILLS")
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("xml")
	assert.Error(t, err)
}
