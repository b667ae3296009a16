package content

// Supplementary episode material read from the content directory

const (
	// SentinelSpeaker and ZeroTimestamp mark the synthetic segment of a
	// transcript that has no speaker headers.
	SentinelSpeaker = "Host"
	ZeroTimestamp   = "00:00"
)

type EpisodeContent struct {
	YoutubeURL string
	Content    string // markdown body, trimmed
}

type Segment struct {
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

type Transcript struct {
	EpisodeNumber int       `json:"episodeNumber"`
	Segments      []Segment `json:"segments"`
}

// IsMonologue reports whether the transcript is a single synthetic
// segment that should be rendered without speaker labels.
func (t *Transcript) IsMonologue() bool {
	return len(t.Segments) == 1 &&
		t.Segments[0].Speaker == SentinelSpeaker &&
		t.Segments[0].Timestamp == ZeroTimestamp
}

// Bundle holds whatever supplementary material exists for one episode.
// Either field may be nil.
type Bundle struct {
	Content    *EpisodeContent
	Transcript *Transcript
}

func (b Bundle) Empty() bool {
	return b.Content == nil && b.Transcript == nil
}
