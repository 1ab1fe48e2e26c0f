// Package history normalizes YouTube watch-history entries and decides which
// of them fall inside a reporting window.
//
// Entries come from two places: a Google Takeout export (watch-history.json)
// and the live watch-history playlist of the YouTube Data API. Both are
// reduced to small immutable values here; anything malformed is skipped
// rather than reported.
package history

import (
	"errors"
	"time"
)

// UnknownChannel is the channel name used when an export entry carries no
// attribution.
const UnknownChannel = "Unknown"

// lineDateLayout renders dates as DD-MM-YY.
const lineDateLayout = "02-01-06"

// Sentinel errors for history parsing.
var (
	ErrInvalidTimestamp = errors.New("history: invalid timestamp")
	ErrNotArray         = errors.New("history: export is not a JSON array")
)

// Record is one watched item from a Takeout export.
type Record struct {
	// Time is when the item was watched. It always carries an offset.
	Time time.Time
	// Title is the video title with any "Watched " prefix removed.
	Title string
	// Channel is the uploader name, or UnknownChannel.
	Channel string
}

// Line formats the record as "[DD-MM-YY] <title> <channel>" using the
// record's own offset for the date.
func (r Record) Line() string {
	return "[" + r.Time.Format(lineDateLayout) + "] " + r.Title + " " + r.Channel
}

// PlaylistItem is one entry of the live watch-history playlist.
type PlaylistItem struct {
	// PublishedAt is the playlist item's publishedAt instant.
	PublishedAt time.Time
	// VideoID is the watched video's ID. It may be empty when the API omits
	// the resource ID.
	VideoID string
}
