package storage

import "context"

// Keys shared with the browser client. Content values are JSON, the rest raw strings.
const (
	KeyProjects     = "portfolio_projects"
	KeyExperiences  = "portfolio_experiences"
	KeySkills       = "portfolio_skills"
	KeyProfile      = "portfolio_profile"
	KeyProfileImage = "portfolio_profileImage"
	KeyResumeURL    = "portfolio_resumeUrl"
	KeyLastUpdated  = "portfolio_last_updated"

	KeyGitHubOwner = "gh_owner"
	KeyGitHubRepo  = "gh_repo"
	KeyGitHubToken = "gh_token"
	KeyGitHubPath  = "gh_path"
)

// Storage is a flat string key/value store with local-storage semantics.
type Storage interface {
	// Get reports found=false for a missing key; err is reserved for backend failures.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
