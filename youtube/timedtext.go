package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ythttp "ythistory/http"
)

// DefaultTimedtextURL is YouTube's caption endpoint.
const DefaultTimedtextURL = "https://www.youtube.com/api/timedtext"

// TimedtextClient fetches captions from YouTube's timedtext API. It
// implements CaptionSource.
type TimedtextClient struct {
	httpClient *ythttp.Client
	baseURL    string
	language   string
}

// NewTimedtextClient creates a timedtext client for the given caption
// language ("en" when empty).
func NewTimedtextClient(httpClient *ythttp.Client, language string) *TimedtextClient {
	if httpClient == nil {
		httpClient = ythttp.New(nil)
	}
	if language == "" {
		language = "en"
	}
	return &TimedtextClient{
		httpClient: httpClient,
		baseURL:    DefaultTimedtextURL,
		language:   language,
	}
}

// WithBaseURL points the client at another timedtext-compatible endpoint.
func (tc *TimedtextClient) WithBaseURL(baseURL string) *TimedtextClient {
	tc.baseURL = baseURL
	return tc
}

// timedtextResponse is the json3 caption document.
type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	TStartMs    int64              `json:"tStartMs"`
	DDurationMs int64              `json:"dDurationMs"`
	AAppend     int                `json:"aAppend,omitempty"`
	Segs        []timedtextSegment `json:"segs,omitempty"`
}

type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// Captions fetches the caption cues of videoID in a single request.
func (tc *TimedtextClient) Captions(ctx context.Context, videoID string) ([]CaptionEntry, error) {
	if videoID == "" {
		return nil, ErrEmptyVideoID
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", tc.language)
	params.Set("fmt", "json3")

	resp, err := tc.httpClient.Get(ctx, tc.baseURL+"?"+params.Encode())
	switch {
	case err == nil:
	case ythttp.IsStatus(err, http.StatusNotFound):
		return nil, fmt.Errorf("%w for video %s in language %s", ErrCaptionsNotFound, videoID, tc.language)
	case ythttp.IsStatus(err, http.StatusForbidden):
		return nil, ErrCaptionsForbidden
	default:
		return nil, fmt.Errorf("timedtext request failed: %w", err)
	}

	return parseCaptions(resp.Body)
}

// parseCaptions decodes either a json3 document or a plain JSON list of
// {"text", "start", "duration"} cues. An empty body means the video has no
// captions in the requested language.
func parseCaptions(data []byte) ([]CaptionEntry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoCaptions
	}

	if data[0] == '[' {
		var entries []CaptionEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse caption list: %w", err)
		}
		return entries, nil
	}

	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse timedtext response: %w", err)
	}

	var entries []CaptionEntry
	for _, event := range resp.Events {
		// Events without segments only position caption windows; append
		// events carry the line breaks between ASR lines.
		if len(event.Segs) == 0 || event.AAppend != 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		if strings.TrimSpace(text.String()) == "" {
			continue
		}

		entries = append(entries, CaptionEntry{
			Text:     text.String(),
			Start:    float64(event.TStartMs) / 1000.0,
			Duration: float64(event.DDurationMs) / 1000.0,
		})
	}
	if len(entries) == 0 {
		return nil, ErrNoCaptions
	}
	return entries, nil
}

// Close releases idle connections.
func (tc *TimedtextClient) Close() error {
	if tc.httpClient != nil {
		return tc.httpClient.Close()
	}
	return nil
}
