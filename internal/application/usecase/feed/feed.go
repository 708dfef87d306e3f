package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// ProjectsFeedUseCase renders the project list as a syndication feed.
type ProjectsFeedUseCase struct {
	store   *state.Store
	siteURL string
	logger  logger.Logger
	now     func() time.Time
}

func NewProjectsFeedUseCase(store *state.Store, siteURL string, log logger.Logger, now func() time.Time) *ProjectsFeedUseCase {
	if now == nil {
		now = time.Now
	}
	return &ProjectsFeedUseCase{
		store:   store,
		siteURL: strings.TrimRight(siteURL, "/"),
		logger:  log,
		now:     now,
	}
}

func (uc *ProjectsFeedUseCase) Execute(_ context.Context) *feeds.Feed {
	st := uc.store.Current()
	p := st.Profile

	feed := &feeds.Feed{
		Title:       strings.TrimSpace(p.Name + " - Projects"),
		Link:        &feeds.Link{Href: uc.siteURL + "/#projects"},
		Description: p.Tagline,
		Author:      &feeds.Author{Name: p.Name, Email: p.Email},
		Created:     uc.now(),
	}

	feed.Items = make([]*feeds.Item, 0, len(st.Projects))
	for _, pr := range st.Projects {
		item := &feeds.Item{
			Id:          fmt.Sprintf("%s/#project-%d", uc.siteURL, pr.ID),
			Title:       pr.Title,
			Link:        &feeds.Link{Href: projectLink(pr.Link, uc.siteURL)},
			Description: describe(pr.Desc, pr.Tech),
		}
		feed.Items = append(feed.Items, item)
	}

	uc.logger.Info("Projects feed generated", zap.Int("item_count", len(feed.Items)))
	return feed
}

// projectLink falls back to the site when a project has no external link yet.
func projectLink(link, site string) string {
	link = strings.TrimSpace(link)
	if link == "" || link == content.NoResume {
		return site + "/#projects"
	}
	return link
}

func describe(desc string, tech []string) string {
	if len(tech) == 0 {
		return desc
	}
	return fmt.Sprintf("%s [%s]", desc, strings.Join(tech, ", "))
}
