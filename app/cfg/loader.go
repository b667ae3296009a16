package cfg

import (
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port    string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl string `long:"base-url" env:"BASE_URL" default:"https://gitbar.it" description:"Public base URL used for canonical links and the sitemap"`

	// Feed configuration
	FeedURL      string        `long:"feed-url" env:"FEED_URL" default:"https://api.riverside.fm/hosting/B4uOwdEh.rss" description:"Podcast RSS feed URL"`
	FetchTimeout time.Duration `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"0s" description:"Feed request timeout (0 keeps the HTTP client default)"`
	CacheTTL     time.Duration `long:"cache-ttl" env:"CACHE_TTL" default:"1h" description:"How long a fetched feed is reused (0 disables caching)"`
	UserAgent    string        `long:"user-agent" env:"USER_AGENT" default:"Gitbar Web/1.0" description:"User agent string for HTTP requests"`

	// Site configuration
	ContentDir string `long:"content-dir" env:"CONTENT_DIR" default:"./content/episodes" description:"Directory containing episode write-ups and transcripts"`
	SiteName   string `long:"site-name" env:"SITE_NAME" default:"Gitbar Podcast" description:"Site name used in page titles and the manifest"`
	DonateURL  string `long:"donate-url" env:"DONATE_URL" default:"https://www.paypal.com/donate/?hosted_button_id=HGHZEH3GVSFQJ" description:"Donation link shown on the support page"`
	Locale     string `long:"locale" env:"LOCALE" default:"it" description:"Locale used to format numbers (BCP 47 tag)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Rome)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load reads configuration from the process arguments and environment.
// It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validate(&raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Cfg{
		Port:         raw.Port,
		BaseUrl:      strings.TrimRight(raw.BaseUrl, "/"),
		FeedURL:      raw.FeedURL,
		FetchTimeout: raw.FetchTimeout,
		CacheTTL:     raw.CacheTTL,
		UserAgent:    raw.UserAgent,
		ContentDir:   raw.ContentDir,
		SiteName:     raw.SiteName,
		DonateURL:    raw.DonateURL,
		Locale:       raw.Locale,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func validate(raw *rawCfg) error {
	requiredFields := map[string]string{
		"feed URL": raw.FeedURL,
		"base URL": raw.BaseUrl,
		"port":     raw.Port,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if raw.FetchTimeout < 0 {
		return fmt.Errorf("fetch timeout cannot be negative")
	}

	if _, err := language.Parse(raw.Locale); err != nil {
		return fmt.Errorf("unknown locale '%s': %w", raw.Locale, err)
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
