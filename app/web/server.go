package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// NewServer creates the site router with all routes configured. Pages are
// marked cacheable for cacheMaxAge.
func NewServer(handler *Handler, cacheMaxAge time.Duration) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health"},
	}))

	r.Use(gin.Recovery())
	r.Use(siteHeaders(cacheMaxAge))

	tmpl := template.Must(template.New("").Funcs(handler.funcMap()).ParseFS(templatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	// Pages
	r.GET("/", handler.Home)
	r.GET("/episodes", handler.Episodes)
	r.GET("/episode/:id", handler.Episode)
	r.GET("/ep/:number", handler.EpisodeByNumber)
	r.GET("/supportaci", handler.Support)

	// Machine-readable endpoints
	r.GET("/sitemap.xml", handler.Sitemap)
	r.GET("/manifest.webmanifest", handler.Manifest)
	r.GET("/health", handler.GetHealth)

	r.StaticFileFS("/icon.svg", "static/icon.svg", http.FS(staticFS))
	r.GET("/robots.txt", func(c *gin.Context) {
		c.String(http.StatusOK, "User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", handler.site.BaseURL)
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.NoRoute(handler.NotFound)

	slog.Debug("Routes configured", "routes", len(r.Routes()))
}

func siteHeaders(cacheMaxAge time.Duration) gin.HandlerFunc {
	cacheControl := "no-cache"
	if cacheMaxAge > 0 {
		cacheControl = fmt.Sprintf("public, max-age=%d", int(cacheMaxAge.Seconds()))
	}

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if c.Request.Method == http.MethodGet && c.Request.URL.Path != "/health" {
			c.Header("Cache-Control", cacheControl)
		}

		c.Next()
	}
}
