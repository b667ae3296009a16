package feed

// Normalized podcast types

type PodcastInfo struct {
	Title       string
	Description string
	Image       string // channel artwork URL
	Author      string
	Link        string
}

type Guest struct {
	Name  string
	Role  string
	Image string
}

type Link struct {
	Text string
	URL  string
}

type Episode struct {
	ID          string // slug derived from the title, not guaranteed unique
	Number      int    // display number, best effort
	Title       string
	Description string // truncated to 300 characters
	Guest       Guest
	Duration    string // H:MM:SS or M:SS
	PublishedAt string // YYYY-MM-DD, UTC
	AudioURL    string
	Topics      []string
	ShowNotes   string // untruncated description

	ITunesEpisode string // raw itunes:episode, informational only
	Season        string // raw itunes:season
	Links         []Link // outbound links found in the description HTML
}

type PodcastData struct {
	Info     PodcastInfo
	Episodes []Episode
}
