package youtube

import (
	"context"
	"errors"
	"iter"
)

// CaptionEntry is one caption cue as returned by a caption source.
type CaptionEntry struct {
	// Text is the caption text. Empty when the source omitted it.
	Text string `json:"text"`
	// Start is the offset of the cue in seconds.
	Start float64 `json:"start"`
	// Duration is the length of the cue in seconds.
	Duration float64 `json:"duration"`
}

// CaptionSource retrieves the caption cues of a video.
type CaptionSource interface {
	Captions(ctx context.Context, videoID string) ([]CaptionEntry, error)
}

// TranscriptResult is the outcome of fetching one video's transcript.
// Exactly one of Lines (on success) or Err (on failure) is meaningful.
type TranscriptResult struct {
	VideoID string
	Lines   []string
	Err     error
}

// OK reports whether the transcript was fetched.
func (r TranscriptResult) OK() bool {
	return r.Err == nil
}

// Detail returns the failure description, or "" on success.
func (r TranscriptResult) Detail() string {
	if r.Err == nil {
		return ""
	}
	var tErr *TranscriptError
	if errors.As(r.Err, &tErr) {
		return tErr.Err.Error()
	}
	return r.Err.Error()
}

// TranscriptFetcher fetches transcripts one video at a time. Each video gets
// exactly one attempt and its failure never affects other videos.
type TranscriptFetcher struct {
	source CaptionSource
}

// NewTranscriptFetcher creates a fetcher reading from source.
func NewTranscriptFetcher(source CaptionSource) *TranscriptFetcher {
	return &TranscriptFetcher{source: source}
}

// Fetch retrieves the transcript of videoID. Failures are returned inside
// the result as a *TranscriptError.
func (f *TranscriptFetcher) Fetch(ctx context.Context, videoID string) TranscriptResult {
	if videoID == "" {
		return TranscriptResult{VideoID: videoID, Err: &TranscriptError{VideoID: videoID, Err: ErrEmptyVideoID}}
	}

	entries, err := f.source.Captions(ctx, videoID)
	if err != nil {
		return TranscriptResult{VideoID: videoID, Err: &TranscriptError{VideoID: videoID, Err: err}}
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Text
	}
	return TranscriptResult{VideoID: videoID, Lines: lines}
}

// FetchEach yields one result per video ID, in order, fetching lazily as the
// consumer advances.
func (f *TranscriptFetcher) FetchEach(ctx context.Context, videoIDs []string) iter.Seq[TranscriptResult] {
	return func(yield func(TranscriptResult) bool) {
		for _, id := range videoIDs {
			if !yield(f.Fetch(ctx, id)) {
				return
			}
		}
	}
}

// FetchAll fetches every video ID in order and returns all results.
func (f *TranscriptFetcher) FetchAll(ctx context.Context, videoIDs []string) []TranscriptResult {
	results := make([]TranscriptResult, 0, len(videoIDs))
	for r := range f.FetchEach(ctx, videoIDs) {
		results = append(results, r)
	}
	return results
}
