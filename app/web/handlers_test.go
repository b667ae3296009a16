package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitbar/gitbar-web/app/content"
	"github.com/gitbar/gitbar-web/app/feed"
)

type fakePodcast struct {
	data      *feed.PodcastData
	err       error
	fetchedAt time.Time
}

func (f *fakePodcast) Get(_ context.Context) (*feed.PodcastData, error) {
	return f.data, f.err
}

func (f *fakePodcast) FetchedAt() time.Time {
	return f.fetchedAt
}

type fakeContent struct {
	bundles map[int]content.Bundle
}

func (f *fakeContent) Load(_ context.Context, number int) content.Bundle {
	return f.bundles[number]
}

func (f *fakeContent) HasEpisodeContent(number int) bool {
	_, ok := f.bundles[number]
	return ok
}

var testSite = Site{
	Name:      "Gitbar Podcast",
	BaseURL:   "https://gitbar.example.com",
	FeedURL:   "https://feeds.example.com/gitbar.rss",
	DonateURL: "https://donate.example.com/gitbar",
	Locale:    "en",
	Version:   "test",
}

func samplePodcast() *feed.PodcastData {
	episodes := []feed.Episode{
		{
			ID:          "ep42-rust-in-produzione",
			Number:      42,
			Title:       "Ep.42 - Rust in produzione",
			Description: "Parliamo di Rust",
			Guest:       feed.Guest{Name: "Brainrepo", Role: "Host", Image: "https://cdn.example.com/ep42.jpg"},
			Duration:    "1:02:05",
			PublishedAt: "2024-03-05",
			AudioURL:    "https://cdn.example.com/ep42.mp3",
			Topics:      []string{"Technology"},
			ShowNotes:   "Intro paragraph\n\n**Argomenti**\n\n- Ownership\n- Borrow checker",
			Links:       []feed.Link{{Text: "Rust book", URL: "https://doc.rust-lang.org/book/"}},
		},
	}
	for i := 41; i >= 36; i-- {
		n := i
		episodes = append(episodes, feed.Episode{
			ID:          "episode-" + string(rune('a'+41-n)),
			Number:      n,
			Title:       "Older episode " + string(rune('A'+41-n)),
			Description: "Older",
			Guest:       feed.Guest{Name: "Brainrepo", Role: "Host"},
			Duration:    "45:00",
			PublishedAt: "2024-02-01",
			Topics:      []string{"Podcast", "Interview"},
		})
	}

	return &feed.PodcastData{
		Info: feed.PodcastInfo{
			Title:       "Gitbar",
			Description: "Il podcast degli sviluppatori",
			Image:       "https://cdn.example.com/gitbar.jpg",
			Author:      "Brainrepo",
			Link:        "https://gitbar.example.com",
		},
		Episodes: episodes,
	}
}

func newTestServer(podcast *fakePodcast, contents *fakeContent) *gin.Engine {
	if contents == nil {
		contents = &fakeContent{}
	}
	handler := NewHandler(podcast, contents, testSite)
	handler.now = func() time.Time {
		return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return NewServer(handler, time.Hour)
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func assertContains(t *testing.T, body string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if !strings.Contains(body, part) {
			t.Errorf("Expected body to contain %q", part)
		}
	}
}

func TestHomePage(t *testing.T) {
	r := newTestServer(&fakePodcast{data: samplePodcast()}, nil)

	w := get(t, r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	assertContains(t, body,
		"<title>Gitbar</title>",
		"Ep.42 - Rust in produzione",
		"Older episode D",
		`"@type":"PodcastSeries"`,
		`"@type":"WebSite"`,
		`"numberOfEpisodes":7`,
	)

	// Latest plus four others.
	if strings.Contains(body, "Older episode E") {
		t.Error("Expected home page to list only four other episodes")
	}
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Expected cacheable page, got Cache-Control %q", got)
	}
}

func TestEpisodesPage(t *testing.T) {
	contents := &fakeContent{bundles: map[int]content.Bundle{
		42: {Content: &content.EpisodeContent{Content: "extra"}},
	}}
	r := newTestServer(&fakePodcast{data: samplePodcast()}, contents)

	w := get(t, r, "/episodes")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	assertContains(t, body, "Visualizzati 7 episodi", "Older episode F", "/episode/ep42-rust-in-produzione")

	if count := strings.Count(body, `class="badge"`); count != 1 {
		t.Errorf("Expected 1 content badge, got %d", count)
	}
}

func TestEpisodesPageEmpty(t *testing.T) {
	r := newTestServer(&fakePodcast{data: &feed.PodcastData{Info: feed.PodcastInfo{Title: "Gitbar"}}}, nil)

	w := get(t, r, "/episodes")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Nessun episodio trovato.")
}

func TestEpisodePage(t *testing.T) {
	contents := &fakeContent{bundles: map[int]content.Bundle{
		42: {
			Content: &content.EpisodeContent{
				YoutubeURL: "https://www.youtube.com/watch?v=abc123",
				Content:    "## Approfondimento\n\nTesto esteso",
			},
			Transcript: &content.Transcript{
				EpisodeNumber: 42,
				Segments: []content.Segment{
					{Timestamp: "0:05", Speaker: "Mauro", Text: "Benvenuti"},
					{Timestamp: "1:10", Speaker: "Luca", Text: "Grazie"},
				},
			},
		},
	}}
	r := newTestServer(&fakePodcast{data: samplePodcast()}, contents)

	w := get(t, r, "/episode/ep42-rust-in-produzione")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	assertContains(t, body,
		"<title>Ep.42 - Rust in produzione | Gitbar</title>",
		"March 5, 2024",
		"<p>Intro paragraph</p>",
		"<h3>Argomenti</h3>",
		"<li>Ownership</li>",
		"<li>Borrow checker</li>",
		`href="https://doc.rust-lang.org/book/"`,
		"https://www.youtube.com/embed/abc123",
		"<h2>Approfondimento</h2>",
		"<strong>Mauro</strong>",
		`"@type":"PodcastEpisode"`,
		`"episodeNumber":42`,
		"Older episode A",
		"Older episode C",
	)

	if strings.Contains(body, "Older episode D") {
		t.Error("Expected only three related episodes")
	}
}

func TestEpisodePageMonologue(t *testing.T) {
	contents := &fakeContent{bundles: map[int]content.Bundle{
		42: {Transcript: &content.Transcript{
			EpisodeNumber: 42,
			Segments:      []content.Segment{{Timestamp: "00:00", Speaker: "Host", Text: "Tutto d'un fiato"}},
		}},
	}}
	r := newTestServer(&fakePodcast{data: samplePodcast()}, contents)

	body := get(t, r, "/episode/ep42-rust-in-produzione").Body.String()

	assertContains(t, body, "Tutto d&#39;un fiato")
	if strings.Contains(body, "<strong>Host</strong>") {
		t.Error("Expected monologue to be rendered without speaker labels")
	}
}

func TestEpisodeNotFound(t *testing.T) {
	r := newTestServer(&fakePodcast{data: samplePodcast()}, nil)

	w := get(t, r, "/episode/missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	assertContains(t, w.Body.String(), "Episodio non trovato")
}

func TestFeedFailure(t *testing.T) {
	fetchErr := &feed.FetchError{URL: testSite.FeedURL, StatusCode: http.StatusInternalServerError, Err: errors.New("HTTP error: 500")}
	r := newTestServer(&fakePodcast{err: fetchErr}, nil)

	for _, path := range []string{"/", "/episodes", "/episode/anything"} {
		w := get(t, r, path)
		if w.Code != http.StatusBadGateway {
			t.Errorf("%s: expected status 502, got %d", path, w.Code)
		}
		if got := w.Header().Get("Cache-Control"); got != "no-store" {
			t.Errorf("%s: expected error page not to be cached, got %q", path, got)
		}
	}

	w := get(t, r, "/sitemap.xml")
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected sitemap status 502, got %d", w.Code)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Expected sitemap error not to be cached, got %q", got)
	}
}

func TestEpisodeShortLink(t *testing.T) {
	r := newTestServer(&fakePodcast{data: samplePodcast()}, nil)

	w := get(t, r, "/ep/40")
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("Expected status 301, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/episode/episode-b" {
		t.Errorf("Expected redirect to /episode/episode-b, got %q", got)
	}

	for _, path := range []string{"/ep/99", "/ep/abc", "/ep/0"} {
		if w := get(t, r, path); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", path, w.Code)
		}
	}
}

func TestSupportPage(t *testing.T) {
	r := newTestServer(&fakePodcast{err: errors.New("feed down")}, nil)

	w := get(t, r, "/supportaci")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected support page to render without the feed, got %d", w.Code)
	}
	assertContains(t, w.Body.String(),
		`href="https://donate.example.com/gitbar"`,
		"Hosting Riverside.fm",
		"€ 29.00",
		"€ 91.98",
		"Gitbar Podcast",
	)
}

func TestSitemapEndpoint(t *testing.T) {
	r := newTestServer(&fakePodcast{data: samplePodcast()}, nil)

	w := get(t, r, "/sitemap.xml")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("Expected XML content type, got %s", ct)
	}
	if got := w.Header().Get("X-Sitemap-Entries"); got != "9" {
		t.Errorf("Expected 9 sitemap entries, got %s", got)
	}
	assertContains(t, w.Body.String(), "<loc>https://gitbar.example.com/episode/ep42-rust-in-produzione</loc>")
}

func TestManifestEndpoint(t *testing.T) {
	r := newTestServer(&fakePodcast{data: samplePodcast()}, nil)

	w := get(t, r, "/manifest.webmanifest")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var manifest Manifest
	if err := json.Unmarshal(w.Body.Bytes(), &manifest); err != nil {
		t.Fatalf("Failed to decode manifest: %v", err)
	}
	if manifest.ShortName != "Gitbar" || manifest.StartURL != "/" {
		t.Errorf("Unexpected manifest: %+v", manifest)
	}
	if len(manifest.Icons) == 0 {
		t.Error("Expected manifest icons")
	}
}

func TestHealthEndpoint(t *testing.T) {
	fetchedAt := time.Date(2024, 3, 10, 11, 30, 0, 0, time.UTC)
	r := newTestServer(&fakePodcast{data: samplePodcast(), fetchedAt: fetchedAt}, nil)

	w := get(t, r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode health: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", health["status"])
	}
	if health["episodes"] != float64(7) {
		t.Errorf("Expected 7 episodes, got %v", health["episodes"])
	}
	if health["feed_age"] != "30m0s" {
		t.Errorf("Expected feed age 30m0s, got %v", health["feed_age"])
	}

	degraded := newTestServer(&fakePodcast{err: errors.New("feed down")}, nil)
	if w := get(t, degraded, "/health"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestStaticRoutes(t *testing.T) {
	r := newTestServer(&fakePodcast{data: samplePodcast()}, nil)

	if w := get(t, r, "/icon.svg"); w.Code != http.StatusOK {
		t.Errorf("Expected icon status 200, got %d", w.Code)
	}
	if w := get(t, r, "/favicon.ico"); w.Code != http.StatusNoContent {
		t.Errorf("Expected favicon status 204, got %d", w.Code)
	}

	w := get(t, r, "/robots.txt")
	assertContains(t, w.Body.String(), "Sitemap: https://gitbar.example.com/sitemap.xml")

	if w := get(t, r, "/no/such/page"); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
