package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/internal/domain/profile"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.uber.org/zap"
)

// MaxItems caps the number of posts in the feed.
const MaxItems = 20

type ContentReader interface {
	Snapshot() content.Snapshot
}

type RSSUseCase struct {
	reader  ContentReader
	siteURL string
	logger  logger.Logger
	now     func() time.Time
}

func NewRSSUseCase(reader ContentReader, siteURL string, log logger.Logger) *RSSUseCase {
	return &RSSUseCase{
		reader:  reader,
		siteURL: strings.TrimRight(siteURL, "/"),
		logger:  log,
		now:     time.Now,
	}
}

// Execute builds a feed of blog posts, newest first. Posts whose date does not
// parse sort last and carry the feed creation time.
func (uc *RSSUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	snap := uc.reader.Snapshot()
	p := snap.Profile

	now := uc.now()
	feed := &feeds.Feed{
		Title:       p.Name + " - Blog",
		Link:        &feeds.Link{Href: uc.siteURL},
		Description: p.TextFor(profile.SectionBlog).Description,
		Author:      &feeds.Author{Name: p.Name, Email: p.Email},
		Created:     now,
	}

	type dated struct {
		post content.BlogPost
		at   time.Time
		ok   bool
	}
	posts := make([]dated, 0, len(snap.Blog))
	for _, b := range snap.Blog {
		at, err := time.Parse("2006-01-02", b.Date)
		posts = append(posts, dated{post: b, at: at, ok: err == nil})
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].ok != posts[j].ok {
			return posts[i].ok
		}
		return posts[i].at.After(posts[j].at)
	})
	if len(posts) > MaxItems {
		posts = posts[:MaxItems]
	}

	var feedItems []*feeds.Item
	for _, d := range posts {
		slug := d.post.Slug
		if slug == "" {
			slug = d.post.ID
		}
		item := &feeds.Item{
			Id:          d.post.ID,
			Title:       d.post.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/blog/%s", uc.siteURL, slug)},
			Description: d.post.Excerpt,
			Content:     d.post.Content,
			Created:     now,
		}
		if d.ok {
			item.Created = d.at
		}
		feedItems = append(feedItems, item)
	}

	feed.Items = feedItems
	uc.logger.Info("RSS feed generated successfully", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
