package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/adapters/media_storage"
	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/storage"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const maxResume = 2 << 20

func newUploadUseCase(t *testing.T) (*UploadUseCase, *state.Store, storage.Storage) {
	t.Helper()
	st := persistence.NewMemoryStorage()
	store := state.NewStore(st, content.Snapshot{LastUpdated: 1, State: content.State{ResumeURL: content.NoResume}}, nil, logger.NewNop())
	return NewUploadUseCase(store, media_storage.NewDataURLAdapter(), "portfolio", 512, maxResume, logger.NewNop()), store, st
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURL(t *testing.T, ref, prefix string) []byte {
	t.Helper()
	require.True(t, strings.HasPrefix(ref, prefix), ref)
	b, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ref, prefix))
	require.NoError(t, err)
	return b
}

func TestUploadImageDownscales(t *testing.T) {
	uc, store, st := newUploadUseCase(t)
	ctx := context.Background()

	ref, err := uc.UploadImage(ctx, UploadInput{Filename: "me.png", Data: pngBytes(t, 1024, 600)})
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(decodeDataURL(t, ref, "data:image/png;base64,")))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 300, cfg.Height)

	require.NotNil(t, store.Current().ProfileImage)
	assert.Equal(t, ref, *store.Current().ProfileImage)
	stored, found, err := st.Get(ctx, storage.KeyProfileImage)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ref, stored)

	require.NoError(t, uc.RemoveImage(ctx))
	assert.Nil(t, store.Current().ProfileImage)
	_, found, err = st.Get(ctx, storage.KeyProfileImage)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUploadImageKeepsSmallImages(t *testing.T) {
	uc, _, _ := newUploadUseCase(t)
	ref, err := uc.UploadImage(context.Background(), UploadInput{Filename: "tiny.png", Data: pngBytes(t, 64, 32)})
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(decodeDataURL(t, ref, "data:image/png;base64,")))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	uc, store, _ := newUploadUseCase(t)
	_, err := uc.UploadImage(context.Background(), UploadInput{Filename: "notes.txt", Data: []byte("hello world")})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Nil(t, store.Current().ProfileImage)
}

func TestUploadResume(t *testing.T) {
	uc, store, st := newUploadUseCase(t)
	ctx := context.Background()
	pdf := []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")

	ref, err := uc.UploadResume(ctx, UploadInput{Filename: "CV.PDF", Data: pdf})
	require.NoError(t, err)
	assert.Equal(t, pdf, decodeDataURL(t, ref, "data:application/pdf;base64,"))
	assert.Equal(t, ref, store.Current().ResumeURL)

	stored, found, err := st.Get(ctx, storage.KeyResumeURL)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ref, stored)
}

func TestUploadResumeLimits(t *testing.T) {
	uc, store, _ := newUploadUseCase(t)
	ctx := context.Background()

	_, err := uc.UploadResume(ctx, UploadInput{Filename: "big.pdf", Data: make([]byte, maxResume+1)})
	require.ErrorIs(t, err, apperror.ErrPayloadTooLarge)
	assert.Equal(t, MsgResumeTooLarge, apperror.Message(err))

	_, err = uc.UploadResume(ctx, UploadInput{Filename: "exactly.pdf", Data: append([]byte("%PDF-1.4\n"), make([]byte, maxResume-9)...)})
	assert.NoError(t, err, "the limit itself is allowed")

	_, err = uc.UploadResume(ctx, UploadInput{Filename: "cv.exe", Data: []byte("MZ")})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.True(t, strings.HasPrefix(store.Current().ResumeURL, "data:"))
}
