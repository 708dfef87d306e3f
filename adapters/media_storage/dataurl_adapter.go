package media_storage

import (
	"context"
	"encoding/base64"

	"github.com/gabriel-vasile/mimetype"

	"github.com/khoahotran/portfolio/internal/application/service"
)

type dataURLAdapter struct{}

// NewDataURLAdapter inlines uploads as data: URLs, so the reference lives in the
// content itself and needs no file host.
func NewDataURLAdapter() service.Uploader {
	return dataURLAdapter{}
}

func (dataURLAdapter) Upload(_ context.Context, data []byte, _, _ string) (string, error) {
	mt := mimetype.Detect(data)
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
