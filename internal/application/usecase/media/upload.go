package media

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const MsgResumeTooLarge = "File is too large (Limit 2MB)"

var resumeExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}

type UploadInput struct {
	Filename string
	Data     []byte
}

// UploadUseCase stores the profile image and resume references.
type UploadUseCase struct {
	store         *state.Store
	uploader      service.Uploader
	folder        string
	maxImageWidth int
	maxResumeSize int64
	logger        logger.Logger
}

func NewUploadUseCase(store *state.Store, u service.Uploader, folder string, maxImageWidth int, maxResumeSize int64, log logger.Logger) *UploadUseCase {
	return &UploadUseCase{
		store:         store,
		uploader:      u,
		folder:        folder,
		maxImageWidth: maxImageWidth,
		maxResumeSize: maxResumeSize,
		logger:        log,
	}
}

func (uc *UploadUseCase) UploadImage(ctx context.Context, in UploadInput) (string, error) {
	if mt := mimetype.Detect(in.Data); !strings.HasPrefix(mt.String(), "image/") {
		return "", apperror.NewInvalidInput("profile image must be an image, got "+mt.String(), nil)
	}
	data, format, err := fitWidth(in.Data, uc.maxImageWidth)
	if err != nil {
		return "", apperror.NewInvalidInput("unreadable image", err)
	}

	ref, err := uc.uploader.Upload(ctx, data, uc.folder, "profile-image")
	if err != nil {
		uc.logger.Error("Failed to upload profile image", err, zap.String("filename", in.Filename))
		return "", apperror.NewInternal("failed to store profile image", err)
	}
	if _, err := uc.store.Update(ctx, func(st content.State) (content.State, error) {
		st.ProfileImage = &ref
		return st, nil
	}); err != nil {
		return "", err
	}
	uc.logger.Info("Profile image updated", zap.String("format", format), zap.Int("bytes", len(data)))
	return ref, nil
}

func (uc *UploadUseCase) RemoveImage(ctx context.Context) error {
	_, err := uc.store.Update(ctx, func(st content.State) (content.State, error) {
		st.ProfileImage = nil
		return st, nil
	})
	return err
}

func (uc *UploadUseCase) UploadResume(ctx context.Context, in UploadInput) (string, error) {
	if int64(len(in.Data)) > uc.maxResumeSize {
		return "", apperror.NewPayloadTooLarge(MsgResumeTooLarge)
	}
	if !resumeExtensions[strings.ToLower(filepath.Ext(in.Filename))] {
		return "", apperror.NewInvalidInput("resume must be a .pdf, .doc or .docx file", nil)
	}

	ref, err := uc.uploader.Upload(ctx, in.Data, uc.folder, "resume")
	if err != nil {
		uc.logger.Error("Failed to upload resume", err, zap.String("filename", in.Filename))
		return "", apperror.NewInternal("failed to store resume", err)
	}
	if _, err := uc.store.Update(ctx, func(st content.State) (content.State, error) {
		st.ResumeURL = ref
		return st, nil
	}); err != nil {
		return "", err
	}
	return ref, nil
}
