package youtube

import (
	"context"
	"fmt"
	"iter"
	"log"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"ythistory/history"
	"ythistory/internal/auth"
)

const (
	// WatchHistoryPlaylistID is the Data API identifier of the signed-in
	// user's watch history.
	WatchHistoryPlaylistID = "HL"

	// PageSize is the number of items requested per page.
	PageSize = 50
)

// Page is one page of playlist items.
type Page struct {
	Items         []*ytapi.PlaylistItem
	NextPageToken string
}

// PageFetcher fetches one page of a playlist. An empty pageToken requests the
// first page.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageToken string) (*Page, error)
}

// APIPageFetcher fetches playlist pages through the YouTube Data API v3.
type APIPageFetcher struct {
	service    *ytapi.Service
	playlistID string
}

// NewAPIPageFetcher builds a Data API client on the session's authorized
// HTTP client. Extra options are appended, e.g. option.WithEndpoint in tests.
func NewAPIPageFetcher(ctx context.Context, session *auth.Session, playlistID string, opts ...option.ClientOption) (*APIPageFetcher, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	if playlistID == "" {
		playlistID = WatchHistoryPlaylistID
	}

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(session.Client())}, opts...)
	service, err := ytapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &APIPageFetcher{service: service, playlistID: playlistID}, nil
}

// PlaylistID returns the playlist this fetcher reads.
func (f *APIPageFetcher) PlaylistID() string {
	return f.playlistID
}

// FetchPage requests one page of snippets. It makes a single attempt.
func (f *APIPageFetcher) FetchPage(ctx context.Context, pageToken string) (*Page, error) {
	call := f.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(f.playlistID).
		MaxResults(PageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, err
	}
	return &Page{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
}

// HistoryWalker turns a PageFetcher into a one-pass sequence of items.
type HistoryWalker struct {
	fetcher    PageFetcher
	playlistID string
	consumed   bool
	pages      int
}

// NewHistoryWalker creates a walker over fetcher. playlistID is only used
// to label errors.
func NewHistoryWalker(fetcher PageFetcher, playlistID string) *HistoryWalker {
	return &HistoryWalker{fetcher: fetcher, playlistID: playlistID}
}

// Pages returns the number of pages fetched so far.
func (w *HistoryWalker) Pages() int {
	return w.pages
}

// Items yields every item of the playlist in service order, requesting pages
// lazily as the consumer advances. A page failure is yielded once as a
// *WalkError and ends the sequence. The sequence can be ranged over once;
// later attempts yield ErrWalkerConsumed.
func (w *HistoryWalker) Items(ctx context.Context) iter.Seq2[*ytapi.PlaylistItem, error] {
	return func(yield func(*ytapi.PlaylistItem, error) bool) {
		if w.consumed {
			yield(nil, ErrWalkerConsumed)
			return
		}
		w.consumed = true

		token := ""
		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			page, err := w.fetcher.FetchPage(ctx, token)
			w.pages++
			if err != nil {
				yield(nil, &WalkError{PlaylistID: w.playlistID, Page: w.pages, Err: err})
				return
			}
			if page == nil {
				page = &Page{}
			}

			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}

			if page.NextPageToken == "" {
				log.Printf("youtube: walked %d page(s) of playlist %s", w.pages, w.playlistID)
				return
			}
			token = page.NextPageToken
		}
	}
}

// NormalizePlaylistItem extracts the publish time and video ID from a Data
// API playlist item. It reports false for items without a snippet or a usable
// publishedAt.
func NormalizePlaylistItem(item *ytapi.PlaylistItem) (history.PlaylistItem, bool) {
	if item == nil || item.Snippet == nil {
		return history.PlaylistItem{}, false
	}
	videoID := ""
	if item.Snippet.ResourceId != nil {
		videoID = item.Snippet.ResourceId.VideoId
	}
	return history.NewPlaylistItem(item.Snippet.PublishedAt, videoID)
}
