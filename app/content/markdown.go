package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

type frontmatter struct {
	YoutubeURL string `yaml:"youtubeUrl"`
}

// ParseMarkdown splits an episode write-up into its optional YAML
// frontmatter and body. A document without a closing delimiter is all body.
func ParseMarkdown(data string) (*EpisodeContent, error) {
	data = strings.TrimPrefix(data, "\ufeff")

	var meta frontmatter
	header, body, ok := splitFrontmatter(data)
	if ok {
		if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}

	return &EpisodeContent{
		YoutubeURL: strings.TrimSpace(meta.YoutubeURL),
		Content:    strings.TrimSpace(body),
	}, nil
}

func splitFrontmatter(data string) (string, string, bool) {
	rest, ok := strings.CutPrefix(data, frontmatterDelimiter)
	if !ok || strings.HasPrefix(rest, "-") {
		return "", data, false
	}

	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		return "", data, false
	}

	header := rest[:end]
	body := rest[end+1+len(frontmatterDelimiter):]

	// Drop the remainder of the closing delimiter line.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}

	return header, body, true
}
