package ythistory

import (
	"errors"

	"ythistory/history"
	ythttp "ythistory/http"
	"ythistory/internal/storage"
	"ythistory/youtube"
)

// Type aliases for convenient error handling.
type (
	// ExportError wraps a failure to load a Takeout export.
	ExportError = history.ExportError
	// WalkError wraps a history page fetch failure.
	WalkError = youtube.WalkError
	// TranscriptError wraps a transcript fetch failure for one video.
	TranscriptError = youtube.TranscriptError
	// ArtifactError wraps a failure to write the transcript file.
	ArtifactError = storage.ArtifactError
	// HTTPError is a non-2xx response from the caption endpoint.
	HTTPError = ythttp.HTTPError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrNotArray indicates the export is not a JSON array.
	ErrNotArray = history.ErrNotArray
	// ErrInvalidTimestamp indicates a timestamp without a parseable offset.
	ErrInvalidTimestamp = history.ErrInvalidTimestamp

	// ErrWalkerConsumed indicates a history walker was iterated twice.
	ErrWalkerConsumed = youtube.ErrWalkerConsumed
	// ErrNoSession indicates a live run was started without credentials.
	ErrNoSession = youtube.ErrNoSession
	// ErrEmptyVideoID indicates a history item without a video ID.
	ErrEmptyVideoID = youtube.ErrEmptyVideoID
	// ErrCaptionsNotFound indicates no captions in the requested language.
	ErrCaptionsNotFound = youtube.ErrCaptionsNotFound
	// ErrNoCaptions indicates the caption endpoint returned nothing.
	ErrNoCaptions = youtube.ErrNoCaptions
	// ErrCaptionsForbidden indicates captions are disabled or region locked.
	ErrCaptionsForbidden = youtube.ErrCaptionsForbidden
)

// IsTranscriptFailure reports whether err is a per-video transcript failure,
// which is written inline rather than aborting a run.
func IsTranscriptFailure(err error) bool {
	var tErr *youtube.TranscriptError
	return errors.As(err, &tErr)
}
