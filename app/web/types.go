package web

import (
	"context"
	"time"

	"github.com/gitbar/gitbar-web/app/content"
	"github.com/gitbar/gitbar-web/app/feed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type PodcastSource interface {
	Get(ctx context.Context) (*feed.PodcastData, error)
	FetchedAt() time.Time
}

var _ PodcastSource = (*feed.Cache)(nil)

type ContentSource interface {
	Load(ctx context.Context, number int) content.Bundle
	HasEpisodeContent(number int) bool
}

var _ ContentSource = (*content.Loader)(nil)

// Site holds the settings pages need besides the podcast itself.
type Site struct {
	Name      string
	BaseURL   string
	FeedURL   string
	DonateURL string
	Locale    string
	Version   string
}

// EpisodeCard is an episode as shown in a list.
type EpisodeCard struct {
	feed.Episode
	HasContent bool
}

type Handler struct {
	podcast PodcastSource
	content ContentSource
	site    Site
	sitemap *SitemapGenerator
	printer *message.Printer
	now     func() time.Time
}

func NewHandler(podcast PodcastSource, content ContentSource, site Site) *Handler {
	return &Handler{
		podcast: podcast,
		content: content,
		site:    site,
		sitemap: NewSitemapGenerator(site.BaseURL),
		printer: message.NewPrinter(language.Make(site.Locale)),
		now:     time.Now,
	}
}
