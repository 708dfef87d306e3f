package backup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/usecase/publish"
	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/codec"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type recordingUploader struct {
	folder, publicID string
	data             []byte
	err              error
}

func (u *recordingUploader) Upload(_ context.Context, data []byte, folder, publicID string) (string, error) {
	u.folder, u.publicID, u.data = folder, publicID, data
	if u.err != nil {
		return "", u.err
	}
	return "https://files.example.com/" + folder + "/" + publicID, nil
}

func newBackup(u *recordingUploader, c codec.Codec) *BackupUseCase {
	store := state.NewStore(persistence.NewMemoryStorage(), content.Snapshot{
		LastUpdated: 1,
		State:       content.State{Skills: []string{"Go"}, ResumeURL: content.NoResume},
	}, nil, logger.NewNop())
	now := func() time.Time { return time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC) }
	return NewBackupUseCase(publish.NewExportUseCase(store, c, now), u, logger.NewNop())
}

func TestBackupUploadsSnapshot(t *testing.T) {
	u := &recordingUploader{}
	out, err := newBackup(u, codec.YAML{}).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "backups/content", u.folder)
	assert.Equal(t, "snapshot-2025-06-01_12-30-00.yaml", u.publicID)
	assert.Equal(t, "https://files.example.com/backups/content/snapshot-2025-06-01_12-30-00.yaml", out.URL)

	snap, err := codec.YAML{}.Decode(u.data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, snap.Skills)
	assert.Equal(t, out.LastUpdated, snap.LastUpdated)
}

func TestBackupUploadFailure(t *testing.T) {
	u := &recordingUploader{err: errors.New("quota exceeded")}
	_, err := newBackup(u, codec.TypeScript{}).Execute(context.Background())
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Equal(t, "snapshot-2025-06-01_12-30-00.ts", u.publicID)
}
