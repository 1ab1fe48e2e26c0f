package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ytapi "google.golang.org/api/youtube/v3"

	"ythistory/config"
	"ythistory/internal/logger"
	"ythistory/youtube"
)

type pageStub struct {
	pages map[string]*youtube.Page
	err   error
}

func (p *pageStub) FetchPage(ctx context.Context, pageToken string) (*youtube.Page, error) {
	if p.err != nil && pageToken != "" {
		return nil, p.err
	}
	return p.pages[pageToken], nil
}

type captionStub struct {
	captions map[string][]youtube.CaptionEntry
	calls    []string
}

func (c *captionStub) Captions(ctx context.Context, videoID string) ([]youtube.CaptionEntry, error) {
	c.calls = append(c.calls, videoID)
	entries, ok := c.captions[videoID]
	if !ok {
		return nil, youtube.ErrCaptionsNotFound
	}
	return entries, nil
}

func watched(videoID, publishedAt string) *ytapi.PlaylistItem {
	return &ytapi.PlaylistItem{Snippet: &ytapi.PlaylistItemSnippet{
		PublishedAt: publishedAt,
		ResourceId:  &ytapi.ResourceId{VideoId: videoID},
	}}
}

func historyPages() *pageStub {
	return &pageStub{pages: map[string]*youtube.Page{
		"": {
			Items: []*ytapi.PlaylistItem{
				watched("today", "2024-06-10T06:00:00Z"),
				watched("v1", "2024-06-09T15:00:00Z"),
				watched("v2", "2024-06-09T12:00:00Z"),
			},
			NextPageToken: "next",
		},
		"next": {
			Items: []*ytapi.PlaylistItem{
				watched("v3", "2024-06-09T00:00:00Z"),
				watched("old", "2024-06-08T23:00:00Z"),
				{Snippet: &ytapi.PlaylistItemSnippet{}},
			},
		},
	}}
}

func newTestLive(t *testing.T, pages youtube.PageFetcher, captions youtube.CaptionSource) *Live {
	t.Helper()
	out := filepath.Join(t.TempDir(), "transcripts_yesterday.txt")
	return NewLive(
		youtube.NewHistoryWalker(pages, youtube.WatchHistoryPlaylistID),
		youtube.NewTranscriptFetcher(captions),
		out,
		fixedNowMidday,
		logger.Discard(),
	)
}

func fixedNowMidday() time.Time {
	return fixedNow().Add(12 * time.Hour)
}

func TestYesterdayVideoIDs(t *testing.T) {
	live := newTestLive(t, historyPages(), &captionStub{})

	ids, err := live.YesterdayVideoIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2", "v3"}, ids)
}

func TestYesterdayVideoIDsKeepsDuplicates(t *testing.T) {
	pages := &pageStub{pages: map[string]*youtube.Page{"": {Items: []*ytapi.PlaylistItem{
		watched("v1", "2024-06-09T15:00:00Z"),
		watched("v1", "2024-06-09T09:00:00Z"),
	}}}}
	live := newTestLive(t, pages, &captionStub{})

	ids, err := live.YesterdayVideoIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v1"}, ids)
}

func TestLiveRunWritesBlocksInOrder(t *testing.T) {
	captions := &captionStub{captions: map[string][]youtube.CaptionEntry{
		"v1": {{Text: "first line"}, {Text: "second line"}},
		"v3": {{Text: "only line"}},
	}}
	live := newTestLive(t, historyPages(), captions)

	n, err := live.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"v1", "v2", "v3"}, captions.calls)

	data, err := os.ReadFile(live.Output())
	require.NoError(t, err)

	want := "--- Transcript for v1 ---\n" +
		"first line\n" +
		"second line\n" +
		"\n" +
		"Could not fetch transcript for v2: youtube: captions not found\n" +
		"\n" +
		"--- Transcript for v3 ---\n" +
		"only line\n" +
		"\n"
	assert.Equal(t, want, string(data))
}

func TestLiveRunNoVideos(t *testing.T) {
	pages := &pageStub{pages: map[string]*youtube.Page{"": {Items: []*ytapi.PlaylistItem{
		watched("old", "2024-06-01T10:00:00Z"),
	}}}}
	live := newTestLive(t, pages, &captionStub{})

	n, err := live.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	data, err := os.ReadFile(live.Output())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLiveRunWalkFailureLeavesNoArtifact(t *testing.T) {
	pages := historyPages()
	pages.err = errors.New("quota exceeded")
	captions := &captionStub{}
	live := newTestLive(t, pages, captions)

	_, err := live.Run(context.Background())

	var walkErr *youtube.WalkError
	require.ErrorAs(t, err, &walkErr)
	assert.Equal(t, 2, walkErr.Page)
	assert.Empty(t, captions.calls)

	_, statErr := os.Stat(live.Output())
	assert.ErrorIs(t, statErr, os.ErrNotExist)

	entries, err := os.ReadDir(filepath.Dir(live.Output()))
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp files left behind")
}

func TestLiveRunEmptyVideoID(t *testing.T) {
	pages := &pageStub{pages: map[string]*youtube.Page{"": {Items: []*ytapi.PlaylistItem{
		{Snippet: &ytapi.PlaylistItemSnippet{PublishedAt: "2024-06-09T10:00:00Z"}},
	}}}}
	captions := &captionStub{}
	live := newTestLive(t, pages, captions)

	n, err := live.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, captions.calls)

	data, err := os.ReadFile(live.Output())
	require.NoError(t, err)
	assert.Equal(t, "Could not fetch transcript for : youtube: video ID is required\n\n", string(data))
}

func TestWriteTranscripts(t *testing.T) {
	results := []youtube.TranscriptResult{
		{VideoID: "a", Lines: []string{"x", ""}},
		{VideoID: "b", Err: &youtube.TranscriptError{VideoID: "b", Err: errors.New("disabled")}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTranscripts(&buf, slices.Values(results)))
	assert.Equal(t, "--- Transcript for a ---\nx\n\n\nCould not fetch transcript for b: disabled\n\n", buf.String())
}

func TestCaptionSourceSelection(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Language = "de, en"

	src, closer := captionSource(cfg)
	api, ok := src.(*youtube.TranscriptAPISource)
	require.True(t, ok, "default source is the transcript api, got %T", src)
	assert.Equal(t, []string{"de", "en"}, api.Languages())
	assert.Nil(t, closer)

	cfg.CaptionSource = config.CaptionSourceTimedtext
	src, closer = captionSource(cfg)
	assert.IsType(t, &youtube.TimedtextClient{}, src)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
}
