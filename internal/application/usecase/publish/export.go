package publish

import (
	"context"
	"time"

	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/codec"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// ExportUseCase renders the live state as the defaults source file.
type ExportUseCase struct {
	store *state.Store
	codec codec.Codec
	now   func() time.Time
}

func NewExportUseCase(store *state.Store, c codec.Codec, now func() time.Time) *ExportUseCase {
	if now == nil {
		now = time.Now
	}
	return &ExportUseCase{store: store, codec: c, now: now}
}

type ExportOutput struct {
	Snapshot content.Snapshot
	Content  []byte
	Format   string
}

// Generate stamps the current state with the clock and encodes it.
func (uc *ExportUseCase) Generate(_ context.Context) (*ExportOutput, error) {
	snap := uc.store.Snapshot(uc.now().UnixMilli())
	out, err := uc.codec.Encode(snap)
	if err != nil {
		return nil, apperror.NewInternal("failed to encode snapshot", err)
	}
	return &ExportOutput{Snapshot: snap, Content: out, Format: uc.codec.Format()}, nil
}
