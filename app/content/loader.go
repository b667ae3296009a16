package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Loader reads optional per-episode files from a content directory:
// <n>.md, <n>-transcript.txt and the legacy <n>-transcript.json.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

func (l *Loader) Dir() string {
	return l.dir
}

// EpisodeContent returns the markdown write-up for an episode. A missing
// or unreadable file yields false.
func (l *Loader) EpisodeContent(number int) (*EpisodeContent, bool) {
	content, err := l.readEpisodeContent(number)
	if err != nil {
		l.logFailure("episode content", number, err)
		return nil, false
	}
	return content, true
}

// Transcript returns the episode transcript, preferring the text format
// over the legacy JSON one.
func (l *Loader) Transcript(number int) (*Transcript, bool) {
	transcript, err := l.readTranscriptText(number)
	if err == nil {
		return transcript, true
	}
	l.logFailure("text transcript", number, err)

	transcript, err = l.readTranscriptJSON(number)
	if err != nil {
		l.logFailure("json transcript", number, err)
		return nil, false
	}
	return transcript, true
}

// HasEpisodeContent reports whether any supplementary file exists for the
// episode without reading it.
func (l *Loader) HasEpisodeContent(number int) bool {
	for _, path := range l.paths(number) {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// Load reads the write-up and the transcript concurrently.
func (l *Loader) Load(ctx context.Context, number int) Bundle {
	var bundle Bundle

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		bundle.Content, _ = l.EpisodeContent(number)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		bundle.Transcript, _ = l.Transcript(number)
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Debug("Supplementary content load cancelled", "episode", number, "error", err)
	}

	return bundle
}

func (l *Loader) readEpisodeContent(number int) (*EpisodeContent, error) {
	data, err := os.ReadFile(l.markdownPath(number))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseMarkdown(string(data))
}

func (l *Loader) readTranscriptText(number int) (*Transcript, error) {
	data, err := os.ReadFile(l.transcriptTextPath(number))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseTranscriptText(string(data), number), nil
}

func (l *Loader) readTranscriptJSON(number int) (*Transcript, error) {
	data, err := os.ReadFile(l.transcriptJSONPath(number))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var transcript Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &transcript, nil
}

// Missing files are the common case and stay quiet.
func (l *Loader) logFailure(kind string, number int, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	slog.Warn("Failed to load supplementary content", "kind", kind, "episode", number, "error", err)
}

func (l *Loader) paths(number int) []string {
	return []string{
		l.markdownPath(number),
		l.transcriptJSONPath(number),
		l.transcriptTextPath(number),
	}
}

func (l *Loader) markdownPath(number int) string {
	return filepath.Join(l.dir, fmt.Sprintf("%d.md", number))
}

func (l *Loader) transcriptTextPath(number int) string {
	return filepath.Join(l.dir, fmt.Sprintf("%d-transcript.txt", number))
}

func (l *Loader) transcriptJSONPath(number int) string {
	return filepath.Join(l.dir, fmt.Sprintf("%d-transcript.json", number))
}
