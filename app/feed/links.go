package feed

import (
	"cmp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractLinks collects the http(s) anchors of an HTML fragment in
// document order, keeping the first occurrence of each URL.
func ExtractLinks(fragment string) []Link {
	if !strings.Contains(fragment, "<a") {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var links []Link
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		href = strings.TrimSpace(href)
		if !isURL(href) || seen[href] {
			return
		}
		seen[href] = true

		text := strings.Join(strings.Fields(sel.Text()), " ")
		links = append(links, Link{Text: cmp.Or(text, href), URL: href})
	})

	return links
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
