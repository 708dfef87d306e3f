package publish

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/storage"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// GitHubConfig is the publish target remembered between sessions.
type GitHubConfig struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Token string `json:"token"`
	Path  string `json:"path"`
}

func (c GitHubConfig) Complete() bool {
	return c.Owner != "" && c.Repo != "" && c.Token != ""
}

type ConfigUseCase struct {
	storage     storage.Storage
	defaultPath string
	logger      logger.Logger
}

func NewConfigUseCase(st storage.Storage, defaultPath string, log logger.Logger) *ConfigUseCase {
	return &ConfigUseCase{storage: st, defaultPath: defaultPath, logger: log}
}

// Get reads the stored target. Unreadable keys come back empty, the path falls back to the default.
func (uc *ConfigUseCase) Get(ctx context.Context) GitHubConfig {
	cfg := GitHubConfig{
		Owner: uc.read(ctx, storage.KeyGitHubOwner),
		Repo:  uc.read(ctx, storage.KeyGitHubRepo),
		Token: uc.read(ctx, storage.KeyGitHubToken),
		Path:  uc.read(ctx, storage.KeyGitHubPath),
	}
	if cfg.Path == "" {
		cfg.Path = uc.defaultPath
	}
	return cfg
}

func (uc *ConfigUseCase) Save(ctx context.Context, cfg GitHubConfig) {
	uc.write(ctx, storage.KeyGitHubOwner, cfg.Owner)
	uc.write(ctx, storage.KeyGitHubRepo, cfg.Repo)
	uc.write(ctx, storage.KeyGitHubToken, cfg.Token)
	uc.write(ctx, storage.KeyGitHubPath, cfg.Path)
}

func (uc *ConfigUseCase) read(ctx context.Context, key string) string {
	v, _, err := uc.storage.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Error reading publish config", zap.String("key", key), zap.Error(err))
		return ""
	}
	return v
}

func (uc *ConfigUseCase) write(ctx context.Context, key, value string) {
	if err := uc.storage.Set(ctx, key, value); err != nil {
		uc.logger.Warn("Error saving publish config", zap.String("key", key), zap.Error(err))
	}
}
