package github_contents

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v74/github"

	"github.com/khoahotran/portfolio/internal/application/service"
)

type contentsClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewContentsClient talks to the GitHub REST API at apiURL, or api.github.com when empty.
func NewContentsClient(apiURL string, httpClient *http.Client) (service.ContentsClient, error) {
	c := &contentsClient{httpClient: httpClient}
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		u, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url %q: %w", apiURL, err)
		}
		c.baseURL = u
	}
	return c, nil
}

func (c *contentsClient) client(token string) *github.Client {
	gh := github.NewClient(c.httpClient).WithAuthToken(token)
	if c.baseURL != nil {
		gh.BaseURL = c.baseURL
	}
	return gh
}

func (c *contentsClient) FileSHA(ctx context.Context, f service.RepoFile) (string, error) {
	file, _, resp, err := c.client(f.Token).Repositories.GetContents(ctx, f.Owner, f.Repo, f.Path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s/%s/%s", service.ErrFileNotFound, f.Owner, f.Repo, f.Path)
		}
		return "", upstream(err)
	}
	if file == nil {
		return "", fmt.Errorf("%s is a directory, not a file", f.Path)
	}
	return file.GetSHA(), nil
}

func (c *contentsClient) UpdateFile(ctx context.Context, f service.RepoFile, message string, content []byte, sha string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: content,
		SHA:     github.Ptr(sha),
	}
	if _, _, err := c.client(f.Token).Repositories.UpdateFile(ctx, f.Owner, f.Repo, f.Path, opts); err != nil {
		return upstream(err)
	}
	return nil
}

func upstream(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		ue := &service.UpstreamError{Message: ghErr.Message}
		if ghErr.Response != nil {
			ue.StatusCode = ghErr.Response.StatusCode
		}
		return ue
	}
	return fmt.Errorf("github request failed: %w", err)
}
