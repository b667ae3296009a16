package web

import (
	"encoding/json"
	"html/template"
	"log/slog"

	"github.com/gitbar/gitbar-web/app/feed"
)

const schemaContext = "https://schema.org"

var organizationProfiles = []string{
	"https://t.me/gitbar",
	"https://www.youtube.com/@gitbar",
}

// schema is a schema.org JSON-LD object.
type schema map[string]any

func podcastSeriesSchema(site Site, info feed.PodcastInfo, episodeCount int) schema {
	return schema{
		"@context":    schemaContext,
		"@type":       "PodcastSeries",
		"name":        info.Title,
		"description": info.Description,
		"url":         site.BaseURL,
		"author": schema{
			"@type": "Person",
			"name":  info.Author,
		},
		"image":            info.Image,
		"webFeed":          site.FeedURL,
		"numberOfEpisodes": episodeCount,
	}
}

func podcastEpisodeSchema(site Site, episode feed.Episode, info feed.PodcastInfo) schema {
	return schema{
		"@context":      schemaContext,
		"@type":         "PodcastEpisode",
		"url":           site.BaseURL + "/episode/" + episode.ID,
		"name":          episode.Title,
		"description":   episode.Description,
		"datePublished": episode.PublishedAt,
		"duration":      episode.Duration,
		"episodeNumber": episode.Number,
		"associatedMedia": schema{
			"@type":      "MediaObject",
			"contentUrl": episode.AudioURL,
		},
		"partOfSeries": schema{
			"@type": "PodcastSeries",
			"name":  info.Title,
			"url":   site.BaseURL,
		},
		"image": episode.Guest.Image,
	}
}

func organizationSchema(site Site) schema {
	return schema{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     shortName,
		"url":      site.BaseURL,
		"logo":     site.BaseURL + "/icon.svg",
		"sameAs":   organizationProfiles,
	}
}

func webSiteSchema(site Site) schema {
	return schema{
		"@context":    schemaContext,
		"@type":       "WebSite",
		"name":        site.Name,
		"url":         site.BaseURL,
		"description": siteDescription,
		"publisher": schema{
			"@type": "Organization",
			"name":  shortName,
		},
	}
}

// marshalSchemas encodes schemas for a ld+json script block. json.Marshal
// escapes <, > and & so the output cannot close the script element.
func marshalSchemas(schemas ...schema) []template.JS {
	encoded := make([]template.JS, 0, len(schemas))
	for _, s := range schemas {
		data, err := json.Marshal(s)
		if err != nil {
			slog.Error("Structured data encoding error", "type", s["@type"], "error", err)
			continue
		}
		encoded = append(encoded, template.JS(data))
	}
	return encoded
}
