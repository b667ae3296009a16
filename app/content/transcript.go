package content

import (
	"regexp"
	"strings"
)

var speakerHeaderPattern = regexp.MustCompile(`^(.+?)\s+\((\d{1,2}:\d{2}(?::\d{2})?)\)`)

// ParseTranscriptText reads the line-oriented transcript format, where a
// "Speaker Name (m:ss)" line opens a segment and the following non-empty
// lines form its text. Content with no speaker lines becomes a single
// monologue segment.
func ParseTranscriptText(data string, episodeNumber int) *Transcript {
	transcript := &Transcript{EpisodeNumber: episodeNumber, Segments: []Segment{}}

	var current Segment
	var lines []string

	flush := func() {
		if current.Speaker != "" && len(lines) > 0 {
			current.Text = strings.TrimSpace(strings.Join(lines, " "))
			transcript.Segments = append(transcript.Segments, current)
		}
	}

	for _, line := range strings.Split(data, "\n") {
		if match := speakerHeaderPattern.FindStringSubmatch(line); match != nil {
			flush()
			current = Segment{
				Speaker:   strings.TrimSpace(match[1]),
				Timestamp: match[2],
			}
			lines = nil
			continue
		}

		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	flush()

	if len(transcript.Segments) == 0 {
		if trimmed := strings.TrimSpace(data); trimmed != "" {
			transcript.Segments = append(transcript.Segments, Segment{
				Timestamp: ZeroTimestamp,
				Speaker:   SentinelSpeaker,
				Text:      trimmed,
			})
		}
	}

	return transcript
}
