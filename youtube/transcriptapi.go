package youtube

import (
	"context"
	"fmt"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/client"
	"github.com/horiagug/youtube-transcript-api-go/pkg/formatters"
)

// transcriptGetter is the part of the youtube-transcript-api client used here.
type transcriptGetter interface {
	GetTranscript(videoID string, languages []string, preserveFormatting bool) (string, error)
}

// TranscriptAPISource implements CaptionSource with youtube-transcript-api-go.
// The library resolves the caption track itself, falling back to
// auto-generated captions when no manual track exists in the requested
// languages.
type TranscriptAPISource struct {
	client    transcriptGetter
	languages []string
}

// NewTranscriptAPISource creates a source preferring the given languages in
// order ("en" when none are given).
func NewTranscriptAPISource(languages ...string) *TranscriptAPISource {
	c := client.New(
		client.WithFormatter(formatters.NewTextFormatter(formatters.WithTimestamps(false))),
	)
	return newTranscriptAPISource(c, languages)
}

func newTranscriptAPISource(c transcriptGetter, languages []string) *TranscriptAPISource {
	var langs []string
	for _, l := range languages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	return &TranscriptAPISource{client: c, languages: langs}
}

// Languages returns the language preference list.
func (s *TranscriptAPISource) Languages() []string {
	return s.languages
}

// Captions fetches the transcript of videoID as one entry per caption line.
// The library call is not cancellable; ctx is only checked before it starts.
func (s *TranscriptAPISource) Captions(ctx context.Context, videoID string) ([]CaptionEntry, error) {
	if videoID == "" {
		return nil, ErrEmptyVideoID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := s.client.GetTranscript(videoID, s.languages, false)
	if err != nil {
		return nil, fmt.Errorf("transcript api: %w", err)
	}

	entries := captionLines(text)
	if len(entries) == 0 {
		return nil, ErrNoCaptions
	}
	return entries, nil
}

// captionLines splits formatted transcript text into entries, dropping
// blank lines so a transcript block never contains an empty line.
func captionLines(text string) []CaptionEntry {
	var entries []CaptionEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, CaptionEntry{Text: line})
	}
	return entries
}
