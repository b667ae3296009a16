package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitbar/gitbar-web/app/feed"
)

const (
	homeEpisodeCount    = 4
	relatedEpisodeCount = 3
)

func (h *Handler) Home(c *gin.Context) {
	podcast, ok := h.loadPodcast(c)
	if !ok {
		return
	}

	var latest *feed.Episode
	var others []feed.Episode
	if len(podcast.Episodes) > 0 {
		latest = &podcast.Episodes[0]
		others = podcast.Episodes[1:]
		if len(others) > homeEpisodeCount {
			others = others[:homeEpisodeCount]
		}
	}

	c.HTML(http.StatusOK, "home.html", h.page(podcast.Info, gin.H{
		"Title":           podcast.Info.Title,
		"Description":     podcast.Info.Description,
		"Canonical":       h.site.BaseURL,
		"HeroDescription": feed.Truncate(podcast.Info.Description, heroDescriptionSize),
		"Latest":          latest,
		"Others":          others,
		"EpisodeCount":    len(podcast.Episodes),
		"Schemas": marshalSchemas(
			podcastSeriesSchema(h.site, podcast.Info, len(podcast.Episodes)),
			webSiteSchema(h.site),
			organizationSchema(h.site),
		),
	}))
}

func (h *Handler) Episodes(c *gin.Context) {
	podcast, ok := h.loadPodcast(c)
	if !ok {
		return
	}

	cards := make([]EpisodeCard, 0, len(podcast.Episodes))
	for _, episode := range podcast.Episodes {
		cards = append(cards, EpisodeCard{
			Episode:    episode,
			HasContent: h.content.HasEpisodeContent(episode.Number),
		})
	}

	c.HTML(http.StatusOK, "episodes.html", h.page(podcast.Info, gin.H{
		"Title":        "Tutti gli Episodi | " + podcast.Info.Title,
		"Description":  podcast.Info.Description,
		"Canonical":    h.site.BaseURL + "/episodes",
		"Episodes":     cards,
		"EpisodeCount": len(cards),
	}))
}

func (h *Handler) Episode(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	podcast, ok := h.loadPodcast(c)
	if !ok {
		return
	}

	episode, ok := feed.EpisodeByID(podcast.Episodes, id)
	if !ok {
		slog.Debug("Episode not found", "episode", id)
		h.renderError(c, podcast.Info, http.StatusNotFound, "Episodio non trovato",
			"L'episodio che cerchi non esiste o è stato rimosso.")
		return
	}

	bundle := h.content.Load(c.Request.Context(), episode.Number)

	var youtubeID string
	if bundle.Content != nil {
		youtubeID = YouTubeID(bundle.Content.YoutubeURL)
	}

	c.HTML(http.StatusOK, "episode.html", h.page(podcast.Info, gin.H{
		"Title":       episode.Title + " | " + podcast.Info.Title,
		"Description": episode.Description,
		"Canonical":   h.site.BaseURL + "/episode/" + episode.ID,
		"Episode":     episode,
		"ShowNotes":   ShowNoteBlocks(episode.ShowNotes),
		"Content":     bundle.Content,
		"Transcript":  bundle.Transcript,
		"Monologue":   bundle.Transcript != nil && bundle.Transcript.IsMonologue(),
		"YouTubeID":   youtubeID,
		"Related":     feed.Related(podcast.Episodes, episode.ID, relatedEpisodeCount),
		"Schemas":     marshalSchemas(podcastEpisodeSchema(h.site, *episode, podcast.Info)),
	}))
}

// EpisodeByNumber redirects a short /ep/<n> link to the episode page.
func (h *Handler) EpisodeByNumber(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		h.NotFound(c)
		return
	}

	podcast, ok := h.loadPodcast(c)
	if !ok {
		return
	}

	episode, ok := feed.EpisodeByNumber(podcast.Episodes, number)
	if !ok {
		slog.Debug("Episode number not found", "number", number)
		h.renderError(c, podcast.Info, http.StatusNotFound, "Episodio non trovato",
			"L'episodio che cerchi non esiste o è stato rimosso.")
		return
	}

	c.Redirect(http.StatusMovedPermanently, "/episode/"+url.PathEscape(episode.ID))
}

// Support renders the donation page. It only needs the podcast title, so
// a feed outage degrades the header instead of failing the page.
func (h *Handler) Support(c *gin.Context) {
	info := h.fallbackInfo()
	if podcast, err := h.podcast.Get(c.Request.Context()); err != nil {
		slog.Warn("Feed unavailable for support page", "error", err)
	} else {
		info = podcast.Info
	}

	lines, total := expenseLines(h.printer)

	c.HTML(http.StatusOK, "support.html", h.page(info, gin.H{
		"Title":       "Supportaci - " + shortName,
		"Description": "Supporta il podcast Gitbar con una donazione e aiutaci a continuare a produrre contenuti di qualità",
		"Canonical":   h.site.BaseURL + "/supportaci",
		"DonateURL":   h.site.DonateURL,
		"Expenses":    lines,
		"Total":       total,
	}))
}

func (h *Handler) Sitemap(c *gin.Context) {
	podcast, err := h.podcast.Get(c.Request.Context())
	if err != nil {
		slog.Error("Sitemap generation error", "error", err)
		c.Header("Cache-Control", "no-store")
		c.Status(http.StatusBadGateway)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Sitemap-Entries", strconv.Itoa(len(podcast.Episodes)+2))

	c.String(http.StatusOK, h.sitemap.Run(podcast.Episodes))
}

func (h *Handler) Manifest(c *gin.Context) {
	data, err := json.Marshal(newManifest())
	if err != nil {
		slog.Error("Manifest encoding error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/manifest+json", data)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": h.now().In(time.Local).Format(time.RFC3339),
		"version":   h.site.Version,
	}

	podcast, err := h.podcast.Get(c.Request.Context())
	if err != nil {
		slog.Error("Health check feed error", "error", err)
		health["status"] = "degraded"
		health["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	health["status"] = "ok"
	health["episodes"] = len(podcast.Episodes)

	if fetchedAt := h.podcast.FetchedAt(); !fetchedAt.IsZero() {
		health["feed_fetched_at"] = fetchedAt.In(time.Local).Format(time.RFC3339)
		health["feed_age"] = h.now().Sub(fetchedAt).Round(time.Second).String()
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) NotFound(c *gin.Context) {
	h.renderError(c, h.fallbackInfo(), http.StatusNotFound, "Pagina non trovata",
		"La pagina che cerchi non esiste.")
}

// loadPodcast writes the error page itself when the feed is unavailable.
func (h *Handler) loadPodcast(c *gin.Context) (*feed.PodcastData, bool) {
	podcast, err := h.podcast.Get(c.Request.Context())
	if err != nil {
		var fetchErr *feed.FetchError
		if errors.As(err, &fetchErr) {
			slog.Error("Feed fetch error", "url", fetchErr.URL, "status", fetchErr.StatusCode, "error", err)
		} else {
			slog.Error("Feed processing error", "error", err)
		}

		h.renderError(c, h.fallbackInfo(), http.StatusBadGateway, "Feed non disponibile",
			"Non riusciamo a caricare gli episodi in questo momento. Riprova tra poco.")
		return nil, false
	}
	return podcast, true
}

func (h *Handler) renderError(c *gin.Context, info feed.PodcastInfo, status int, title, message string) {
	c.Header("Cache-Control", "no-store")
	c.HTML(status, "error.html", h.page(info, gin.H{
		"Title":   title + " | " + info.Title,
		"Status":  status,
		"Heading": title,
		"Message": message,
	}))
}

func (h *Handler) page(info feed.PodcastInfo, data gin.H) gin.H {
	data["Site"] = h.site
	data["Podcast"] = info
	data["Year"] = h.now().Year()
	return data
}

func (h *Handler) fallbackInfo() feed.PodcastInfo {
	return feed.PodcastInfo{Title: h.site.Name, Link: h.site.BaseURL}
}
