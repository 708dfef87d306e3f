package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/khoahotran/portfolio/internal/domain/content"
)

const (
	constLastUpdated  = "LAST_UPDATED"
	constProfileImage = "INITIAL_PROFILE_IMAGE"
	constResumeURL    = "INITIAL_RESUME_URL"
	constProjects     = "INITIAL_PROJECTS"
	constSkills       = "INITIAL_SKILLS"
	constExperiences  = "INITIAL_EXPERIENCES"
	constProfile      = "INITIAL_PROFILE"
)

var exportConst = regexp.MustCompile(`(?m)^export const ([A-Z_]+)\b[^=\n]*=\s*`)

// TypeScript reads and writes the constants module the site build imports:
// one `export const` per state part, each value a JSON literal.
type TypeScript struct{}

func (TypeScript) Format() string { return FormatTypeScript }

func (TypeScript) Encode(s content.Snapshot) ([]byte, error) {
	s = normalize(s)

	var b strings.Builder
	b.WriteString("import { Project, Experience, Profile } from \"./types\";\n\n")
	fmt.Fprintf(&b, "export const %s = %d;\n\n", constLastUpdated, s.LastUpdated)
	b.WriteString("// Profile image and resume are stored as data URLs or remote URLs.\n")

	parts := []struct {
		name, typ string
		value     any
	}{
		{constProfileImage, "string | null", s.ProfileImage},
		{constResumeURL, "string", s.ResumeURL},
		{constProjects, "Project[]", s.Projects},
		{constSkills, "string[]", s.Skills},
		{constExperiences, "Experience[]", s.Experiences},
		{constProfile, "Profile", s.Profile},
	}
	for i, p := range parts {
		literal, err := jsonLiteral(p.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", p.name, err)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "export const %s: %s = %s;\n", p.name, p.typ, literal)
	}
	return []byte(b.String()), nil
}

func (TypeScript) Decode(data []byte) (content.Snapshot, error) {
	src := string(data)
	matches := exportConst.FindAllStringSubmatchIndex(src, -1)

	values := make(map[string]string, len(matches))
	for i, m := range matches {
		end := len(src)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		values[src[m[2]:m[3]]] = src[m[1]:end]
	}

	var s content.Snapshot
	targets := []struct {
		name string
		dst  any
	}{
		{constLastUpdated, &s.LastUpdated},
		{constProfileImage, &s.ProfileImage},
		{constResumeURL, &s.ResumeURL},
		{constProjects, &s.Projects},
		{constSkills, &s.Skills},
		{constExperiences, &s.Experiences},
		{constProfile, &s.Profile},
	}
	for _, t := range targets {
		raw, ok := values[t.name]
		if !ok {
			return content.Snapshot{}, fmt.Errorf("decode: missing constant %s", t.name)
		}
		// The decoder stops after the first JSON value, leaving the trailing ";" and comments.
		if err := json.NewDecoder(strings.NewReader(raw)).Decode(t.dst); err != nil {
			return content.Snapshot{}, fmt.Errorf("decode %s: %w", t.name, err)
		}
	}
	return normalize(s), nil
}

func jsonLiteral(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
