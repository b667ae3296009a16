package web

import (
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/gitbar/gitbar-web/app/feed"
	"github.com/russross/blackfriday/v2"
)

const (
	displayDateLayout   = "January 2, 2006"
	heroDescriptionSize = 200
)

type NoteKind string

const (
	NoteParagraph NoteKind = "paragraph"
	NoteHeading   NoteKind = "heading"
	NoteList      NoteKind = "list"
)

// NoteBlock is one rendered chunk of an episode's show notes.
type NoteBlock struct {
	Kind  NoteKind
	Text  string
	Items []string
}

// ShowNoteBlocks splits show notes on blank lines. A chunk wrapped in
// "**" is a heading and a chunk starting with "- " is a list.
func ShowNoteBlocks(notes string) []NoteBlock {
	var blocks []NoteBlock

	for _, chunk := range strings.Split(notes, "\n\n") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(chunk, "**") && strings.HasSuffix(chunk, "**"):
			blocks = append(blocks, NoteBlock{Kind: NoteHeading, Text: strings.ReplaceAll(chunk, "**", "")})
		case strings.HasPrefix(chunk, "- "):
			lines := strings.Split(chunk, "\n")
			items := make([]string, 0, len(lines))
			for _, line := range lines {
				items = append(items, strings.Replace(line, "- ", "", 1))
			}
			blocks = append(blocks, NoteBlock{Kind: NoteList, Items: items})
		default:
			blocks = append(blocks, NoteBlock{Kind: NoteParagraph, Text: chunk})
		}
	}

	return blocks
}

// FormatDate turns a YYYY-MM-DD date into its long English form. Anything
// else is returned unchanged.
func FormatDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format(displayDateLayout)
}

// YouTubeID extracts the video id from youtu.be and youtube.com links.
func YouTubeID(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be":
		return strings.TrimPrefix(u.Path, "/")
	case strings.Contains(host, "youtube.com"):
		return u.Query().Get("v")
	}
	return ""
}

// Markdown renders trusted local markdown to HTML.
func Markdown(source string) template.HTML {
	return template.HTML(blackfriday.Run([]byte(source)))
}

func (h *Handler) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": FormatDate,
		"markdown":   Markdown,
		"number": func(n int) string {
			return h.printer.Sprintf("%d", n)
		},
		"truncate": feed.Truncate,
		"episodeURL": func(id string) string {
			return "/episode/" + url.PathEscape(id)
		},
	}
}
