package service

import "context"

// Uploader turns an uploaded file into a reference the page can load directly:
// a data URL or a hosted URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder, publicID string) (string, error)
}
