package web

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gitbar/gitbar-web/app/feed"
)

type sitemapEntry struct {
	loc        string
	lastMod    string
	changeFreq string
	priority   float64
}

type SitemapGenerator struct {
	baseURL string
	now     func() time.Time
}

func NewSitemapGenerator(baseURL string) *SitemapGenerator {
	return &SitemapGenerator{
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Run lists the home and episode index pages followed by one entry per
// episode, dated by its publish date.
func (g *SitemapGenerator) Run(episodes []feed.Episode) string {
	today := g.now().UTC().Format("2006-01-02")

	entries := []sitemapEntry{
		{loc: g.baseURL, lastMod: today, changeFreq: "daily", priority: 1.0},
		{loc: g.baseURL + "/episodes", lastMod: today, changeFreq: "daily", priority: 0.9},
	}
	for _, episode := range episodes {
		entries = append(entries, sitemapEntry{
			loc:        fmt.Sprintf("%s/episode/%s", g.baseURL, episode.ID),
			lastMod:    episode.PublishedAt,
			changeFreq: "weekly",
			priority:   0.8,
		})
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	buf.WriteString("\n")

	for _, entry := range entries {
		g.writeEntry(&buf, entry)
	}

	buf.WriteString("</urlset>\n")

	return buf.String()
}

func (g *SitemapGenerator) writeEntry(buf *bytes.Buffer, entry sitemapEntry) {
	buf.WriteString("  <url>\n")
	g.writeElement(buf, "loc", entry.loc, 4)
	g.writeElement(buf, "lastmod", entry.lastMod, 4)
	g.writeElement(buf, "changefreq", entry.changeFreq, 4)
	g.writeElement(buf, "priority", fmt.Sprintf("%.1f", entry.priority), 4)
	buf.WriteString("  </url>\n")
}

func (g *SitemapGenerator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
