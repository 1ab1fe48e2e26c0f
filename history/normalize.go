package history

import (
	"fmt"
	"strings"
	"time"
)

const watchedPrefix = "Watched "

// timestampLayouts are the ISO-8601 shapes accepted after a trailing Z has
// been rewritten to +00:00. Every layout requires an offset.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04-07:00",
	"2006-01-02T15:04:05.999999999-0700",
}

// ParseTimestamp parses an ISO-8601 timestamp with an offset. A trailing "Z"
// is treated as "+00:00". Timestamps without an offset are rejected.
func ParseTimestamp(s string) (time.Time, error) {
	value := s
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// NormalizeEntry converts one Takeout export entry into a Record.
// It reports false when the entry lacks a string title or time, or when the
// time cannot be parsed.
func NormalizeEntry(entry map[string]any) (Record, bool) {
	title, ok := entry["title"].(string)
	if !ok {
		return Record{}, false
	}
	rawTime, ok := entry["time"].(string)
	if !ok {
		return Record{}, false
	}

	t, err := ParseTimestamp(rawTime)
	if err != nil {
		return Record{}, false
	}

	return Record{
		Time:    t,
		Title:   strings.TrimPrefix(title, watchedPrefix),
		Channel: channelName(entry["subtitles"]),
	}, true
}

// channelName returns the first subtitle's name, or UnknownChannel.
func channelName(subtitles any) string {
	list, ok := subtitles.([]any)
	if !ok || len(list) == 0 {
		return UnknownChannel
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		return UnknownChannel
	}
	if name, ok := first["name"].(string); ok {
		return name
	}
	return UnknownChannel
}

// NewPlaylistItem builds a PlaylistItem from a snippet's publishedAt and
// resourceId.videoId values. It reports false when publishedAt is empty or
// unparseable; an empty videoID is kept.
func NewPlaylistItem(publishedAt, videoID string) (PlaylistItem, bool) {
	if publishedAt == "" {
		return PlaylistItem{}, false
	}
	t, err := ParseTimestamp(publishedAt)
	if err != nil {
		return PlaylistItem{}, false
	}
	return PlaylistItem{PublishedAt: t, VideoID: videoID}, true
}
