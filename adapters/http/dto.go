package http

import (
	"github.com/khoahotran/portfolio/internal/application/usecase/publish"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/experience"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/internal/domain/project"
)

// Auth DTOs
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type SetModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// Portfolio DTOs
type PortfolioDTO struct {
	Profile      profile.Profile         `json:"profile"`
	Projects     []project.Project       `json:"projects"`
	Skills       []string                `json:"skills"`
	Experiences  []experience.Experience `json:"experiences"`
	ProfileImage *string                 `json:"profileImage"`
	ResumeURL    *string                 `json:"resumeUrl"`
	ProjectCount int                     `json:"projectCount"`
}

func ToPortfolioDTO(st content.State) PortfolioDTO {
	dto := PortfolioDTO{
		Profile:      st.Profile,
		Projects:     st.Projects,
		Skills:       st.Skills,
		Experiences:  st.Experiences,
		ProfileImage: st.ProfileImage,
		ProjectCount: len(st.Projects),
	}
	if st.HasResume() {
		url := st.ResumeURL
		dto.ResumeURL = &url
	}
	return dto
}

// Editor DTOs
type DraftFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type SkillsDraftRequest struct {
	Value string `json:"value"`
}

type AddSkillRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// Publish DTOs
type GitHubConfigRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Token string `json:"token"`
	Path  string `json:"path"`
}

func (r GitHubConfigRequest) toConfig() publish.GitHubConfig {
	return publish.GitHubConfig{Owner: r.Owner, Repo: r.Repo, Token: r.Token, Path: r.Path}
}

// GitHubConfigDTO never echoes the token back.
type GitHubConfigDTO struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Path     string `json:"path"`
	HasToken bool   `json:"has_token"`
}

func ToGitHubConfigDTO(c publish.GitHubConfig) GitHubConfigDTO {
	return GitHubConfigDTO{Owner: c.Owner, Repo: c.Repo, Path: c.Path, HasToken: c.Token != ""}
}

// Contact DTOs
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}
