package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	UnknownAuthor = "Unknown"
	HostRole      = "Host"
	dateLayout    = "2006-01-02"
)

const defaultRSSAttrs = ` version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"`

var (
	channelOpenPattern = regexp.MustCompile(`(?i)<channel[\s>/]`)
	xmlDeclPattern     = regexp.MustCompile(`^\s*<\?xml[^>]*\?>`)
	rssOpenPattern     = regexp.MustCompile(`(?i)<rss(\s[^>]*)?>`)
	rssClosePattern    = regexp.MustCompile(`(?i)</rss\s*>`)
)

type Parser struct {
	gofeedParser *gofeed.Parser
	now          func() time.Time
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
		now:          time.Now,
	}
}

// Run parses a podcast feed and returns its normalized form with
// episodes ordered newest first.
func (p *Parser) Run(data []byte) (*PodcastData, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(wrapChannel(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	info := p.normalizeInfo(feed)

	episodes := make([]Episode, 0, len(feed.Items))
	for index, item := range feed.Items {
		episodes = append(episodes, p.normalizeItem(item, index, len(feed.Items), info))
	}

	slices.SortStableFunc(episodes, func(a, b Episode) int {
		return strings.Compare(b.PublishedAt, a.PublishedAt)
	})

	return &PodcastData{Info: info, Episodes: episodes}, nil
}

func (p *Parser) normalizeInfo(feed *gofeed.Feed) PodcastInfo {
	info := PodcastInfo{
		Title:       StripHTML(feed.Title),
		Description: StripHTML(feed.Description),
		Link:        strings.TrimSpace(feed.Link),
	}

	var itunesImage, itunesAuthor string
	if feed.ITunesExt != nil {
		itunesImage = feed.ITunesExt.Image
		itunesAuthor = strings.TrimSpace(feed.ITunesExt.Author)
	}

	var channelImage string
	if feed.Image != nil {
		channelImage = strings.TrimSpace(feed.Image.URL)
	}

	info.Image = cmp.Or(itunesImage, channelImage)
	info.Author = cmp.Or(itunesAuthor, UnknownAuthor)

	return info
}

func (p *Parser) normalizeItem(item *gofeed.Item, index, total int, info PodcastInfo) Episode {
	title := StripHTML(item.Title)
	description := StripHTML(item.Description)

	var rawDuration, itemImage, itunesEpisode, season string
	if item.ITunesExt != nil {
		rawDuration = strings.TrimSpace(item.ITunesExt.Duration)
		itemImage = item.ITunesExt.Image
		itunesEpisode = strings.TrimSpace(item.ITunesExt.Episode)
		season = strings.TrimSpace(item.ITunesExt.Season)
	}

	number, ok := ParseEpisodeNumber(title)
	if !ok {
		number = total - index
	}

	episode := Episode{
		ID:          GenerateSlug(title, index),
		Number:      number,
		Title:       title,
		Description: Truncate(description, maxDescriptionLength),
		Guest: Guest{
			Name:  info.Author,
			Role:  HostRole,
			Image: cmp.Or(itemImage, info.Image),
		},
		Duration:      ParseDuration(cmp.Or(rawDuration, DefaultDuration)),
		PublishedAt:   p.publishedAt(item),
		Topics:        ExtractTopics(title, description),
		ShowNotes:     description,
		ITunesEpisode: itunesEpisode,
		Season:        season,
		Links:         ExtractLinks(item.Description),
	}

	// RSS 2.0 allows a single enclosure per item
	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		episode.AudioURL = item.Enclosures[0].URL
	}

	return episode
}

func (p *Parser) publishedAt(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(dateLayout)
	}

	if item.Published != "" {
		slog.Debug("Unparseable publish date, using current date", "title", item.Title, "pub_date", item.Published)
	}

	return p.now().UTC().Format(dateLayout)
}

// wrapChannel gives an RSS document without a <channel> element one, so
// the whole document is read as channel scope. An existing <rss> root
// keeps its attributes and namespace declarations. Atom and JSON feeds
// are left alone.
func wrapChannel(data []byte) []byte {
	if channelOpenPattern.Match(data) {
		return data
	}

	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeAtom, gofeed.FeedTypeJSON:
		return data
	}

	slog.Debug("Feed has no channel element, using whole document")

	decl := xmlDeclPattern.Find(data)
	body := data[len(decl):]

	attrs := []byte(defaultRSSAttrs)
	if loc := rssOpenPattern.FindSubmatchIndex(body); loc != nil {
		if loc[2] >= 0 {
			attrs = slices.Clone(body[loc[2]:loc[3]])
		}
		body = slices.Concat(body[:loc[0]], body[loc[1]:])
	}
	body = rssClosePattern.ReplaceAll(body, nil)

	var buf bytes.Buffer
	buf.Write(decl)
	buf.WriteString("<rss")
	buf.Write(attrs)
	buf.WriteString("><channel>")
	buf.Write(body)
	buf.WriteString("</channel></rss>")

	return buf.Bytes()
}
