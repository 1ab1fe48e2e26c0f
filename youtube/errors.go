// Package youtube walks the authenticated user's watch history through the
// YouTube Data API v3 and fetches caption transcripts for watched videos.
package youtube

import (
	"errors"
	"strconv"
)

// Sentinel errors for history and transcript operations.
var (
	ErrWalkerConsumed    = errors.New("youtube: history walker already consumed")
	ErrEmptyVideoID      = errors.New("youtube: video ID is required")
	ErrCaptionsNotFound  = errors.New("youtube: captions not found")
	ErrNoCaptions        = errors.New("youtube: video has no captions")
	ErrCaptionsForbidden = errors.New("youtube: captions unavailable (region restricted or disabled)")
	ErrNoSession         = errors.New("youtube: authenticated session required")
)

// WalkError wraps a page fetch failure during a history walk.
// Use errors.As() to extract this error type and get the failing page:
//
//	var walkErr *youtube.WalkError
//	if errors.As(err, &walkErr) {
//		fmt.Printf("page %d of %s failed: %v\n", walkErr.Page, walkErr.PlaylistID, walkErr.Err)
//	}
type WalkError struct {
	// PlaylistID is the collection being walked.
	PlaylistID string
	// Page is the 1-based number of the page that failed.
	Page int
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the walk error.
func (e *WalkError) Error() string {
	return "youtube: playlist " + e.PlaylistID + " page " + strconv.Itoa(e.Page) + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *WalkError) Unwrap() error { return e.Err }

// TranscriptError wraps a transcript fetch failure for one video.
type TranscriptError struct {
	// VideoID is the video whose transcript could not be fetched.
	VideoID string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the transcript error.
func (e *TranscriptError) Error() string {
	return "youtube: transcript " + e.VideoID + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *TranscriptError) Unwrap() error { return e.Err }
