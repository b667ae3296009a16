package cfg

import "time"

type Cfg struct {
	// Server configuration
	Port    string
	BaseUrl string

	// Feed configuration
	FeedURL      string
	FetchTimeout time.Duration
	CacheTTL     time.Duration
	UserAgent    string

	// Site configuration
	ContentDir string
	SiteName   string
	DonateURL  string
	Locale     string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
