package backup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/application/usecase/publish"
	"github.com/khoahotran/portfolio/internal/codec"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const folder = "backups/content"

// BackupUseCase uploads the current export as a timestamped snapshot file.
type BackupUseCase struct {
	exporter *publish.ExportUseCase
	uploader service.Uploader
	logger   logger.Logger
}

func NewBackupUseCase(exporter *publish.ExportUseCase, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		exporter: exporter,
		uploader: uploader,
		logger:   log,
	}
}

type Output struct {
	URL         string `json:"url"`
	PublicID    string `json:"public_id"`
	LastUpdated int64  `json:"last_updated"`
}

func (uc *BackupUseCase) Execute(ctx context.Context) (*Output, error) {
	uc.logger.Info("Starting content backup...")

	out, err := uc.exporter.Generate(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := out.Snapshot.Time().UTC().Format("2006-01-02_15-04-05")
	publicID := fmt.Sprintf("snapshot-%s.%s", timestamp, extension(out.Format))

	url, err := uc.uploader.Upload(ctx, out.Content, folder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload content backup", err)
		return nil, apperror.NewInternal("failed to upload backup", err)
	}

	uc.logger.Info("Content backup uploaded",
		zap.String("public_id", publicID),
		zap.Int("bytes", len(out.Content)),
	)
	return &Output{URL: url, PublicID: publicID, LastUpdated: out.Snapshot.LastUpdated}, nil
}

// RunEvery takes a backup on each tick until ctx ends. Failures are logged only.
func (uc *BackupUseCase) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil {
				uc.logger.Warn("Scheduled backup failed", zap.Error(err))
			}
		}
	}
}

func extension(format string) string {
	if format == codec.FormatYAML {
		return "yaml"
	}
	return "ts"
}
