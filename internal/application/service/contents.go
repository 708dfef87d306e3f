package service

import (
	"context"
	"errors"
	"fmt"
)

// ErrFileNotFound is returned by ContentsClient when the target file does not exist.
var ErrFileNotFound = errors.New("file not found")

// RepoFile addresses one file in a remote repository, with the token allowed to write it.
type RepoFile struct {
	Owner string
	Repo  string
	Path  string
	Token string
}

// ContentsClient is the two-call slice of a repository contents API used for publishing.
type ContentsClient interface {
	// FileSHA returns the revision marker of the current file content.
	FileSHA(ctx context.Context, f RepoFile) (string, error)
	// UpdateFile replaces the file; sha must be the marker returned by FileSHA.
	UpdateFile(ctx context.Context, f RepoFile, message string, content []byte, sha string) error
}

// UpstreamError carries the message a remote API returned with a failed request.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}
