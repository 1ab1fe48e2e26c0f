package pipeline

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"ythistory/config"
	ythttp "ythistory/http"
	"ythistory/history"
	"ythistory/internal/auth"
	"ythistory/internal/logger"
	"ythistory/internal/storage"
	"ythistory/youtube"
)

// Live is the transcript dump for videos watched yesterday.
type Live struct {
	walker      *youtube.HistoryWalker
	transcripts *youtube.TranscriptFetcher
	output      string
	now         func() time.Time
	log         *logger.Logger
	closer      io.Closer
}

// NewLive assembles a run from its parts. now defaults to time.Now.
func NewLive(walker *youtube.HistoryWalker, transcripts *youtube.TranscriptFetcher, output string, now func() time.Time, log *logger.Logger) *Live {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Live{
		walker:      walker,
		transcripts: transcripts,
		output:      output,
		now:         now,
		log:         log,
	}
}

// NewLiveFromConfig wires the Data API walker and the caption source
// selected by cfg.
func NewLiveFromConfig(ctx context.Context, cfg *config.Config, session *auth.Session, log *logger.Logger) (*Live, error) {
	pages, err := youtube.NewAPIPageFetcher(ctx, session, cfg.PlaylistID)
	if err != nil {
		return nil, err
	}

	captions, closer := captionSource(cfg)

	live := NewLive(
		youtube.NewHistoryWalker(pages, pages.PlaylistID()),
		youtube.NewTranscriptFetcher(captions),
		cfg.Output,
		time.Now,
		log,
	)
	live.closer = closer
	return live, nil
}

// captionSource builds the transcript source selected by cfg. The closer
// is nil when the source holds no connections of its own.
func captionSource(cfg *config.Config) (youtube.CaptionSource, io.Closer) {
	if cfg.CaptionSource == config.CaptionSourceTimedtext {
		httpClient := ythttp.New(&ythttp.Config{
			Timeout:           time.Duration(cfg.HTTPTimeout),
			UserAgent:         cfg.UserAgent,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Transport:         ythttp.DefaultTransportConfig(),
		})
		tc := youtube.NewTimedtextClient(httpClient, cfg.Language)
		return tc, tc
	}
	return youtube.NewTranscriptAPISource(strings.Split(cfg.Language, ",")...), nil
}

// Output returns the artifact path.
func (l *Live) Output() string {
	return l.output
}

// YesterdayVideoIDs walks the history and returns, in walk order, the IDs of
// items published on yesterday's UTC date. Duplicates are kept. A page
// failure aborts the walk and is returned as a *youtube.WalkError.
func (l *Live) YesterdayVideoIDs(ctx context.Context) ([]string, error) {
	yesterday := history.Yesterday(l.now())
	l.log.Debug("collecting watch history", "day", yesterday.String())

	var ids []string
	var seen, skipped int
	for it, err := range l.walker.Items(ctx) {
		if err != nil {
			return nil, err
		}
		seen++
		item, ok := youtube.NormalizePlaylistItem(it)
		if !ok {
			skipped++
			continue
		}
		if history.SameDay(item.PublishedAt, yesterday) {
			ids = append(ids, item.VideoID)
		}
	}

	l.log.Debug("walked watch history", "items", seen, "skipped", skipped, "matched", len(ids))
	return ids, nil
}

// WriteTranscripts writes one block per result, in order. A successful block
// is a header, the caption lines and a blank line. A failed block is a
// single "Could not fetch" line and a blank line.
func WriteTranscripts(w io.Writer, results iter.Seq[youtube.TranscriptResult]) error {
	for r := range results {
		var err error
		if r.OK() {
			err = writeTranscript(w, r)
		} else {
			_, err = fmt.Fprintf(w, "Could not fetch transcript for %s: %s\n\n", r.VideoID, r.Detail())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTranscript(w io.Writer, r youtube.TranscriptResult) error {
	if _, err := fmt.Fprintf(w, "--- Transcript for %s ---\n", r.VideoID); err != nil {
		return err
	}
	for _, line := range r.Lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Run collects yesterday's video IDs, fetches each transcript once and
// commits the artifact. It returns the number of IDs written, counting
// failures. The artifact is not touched when the walk fails.
func (l *Live) Run(ctx context.Context) (int, error) {
	ids, err := l.YesterdayVideoIDs(ctx)
	if err != nil {
		return 0, err
	}

	var failed int
	err = storage.WriteArtifact(l.output, func(w io.Writer) error {
		return WriteTranscripts(w, func(yield func(youtube.TranscriptResult) bool) {
			for r := range l.transcripts.FetchEach(ctx, ids) {
				if !r.OK() {
					failed++
					l.log.Warn("transcript unavailable", "video_id", r.VideoID, "error", r.Err)
				}
				if !yield(r) {
					return
				}
			}
		})
	})
	if err != nil {
		return 0, err
	}

	l.log.Info("saved transcripts", "path", l.output, "videos", len(ids), "failed", failed)
	return len(ids), nil
}

// Close releases the caption source's connections.
func (l *Live) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
