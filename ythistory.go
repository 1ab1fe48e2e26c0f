package ythistory

import (
	"context"
	"io"
	"time"

	"ythistory/config"
	"ythistory/history"
	"ythistory/internal/auth"
	"ythistory/internal/logger"
	"ythistory/pipeline"
)

type (
	// Record is one watched video from a Takeout export.
	Record = history.Record
	// Session is an authorized handle to the user's Google account.
	Session = auth.Session
)

// ListRecent returns the export entries at path watched in the 7 days
// before now, in file order.
func ListRecent(path string, now time.Time) ([]Record, error) {
	return pipeline.RecentRecords(path, now, nil)
}

// Authenticate runs the console OAuth flow with the client secret file at
// secretsPath, prompting on out and reading the pasted code from in.
func Authenticate(ctx context.Context, secretsPath string, in io.Reader, out io.Writer) (*Session, error) {
	return auth.Authenticate(ctx, secretsPath, in, out)
}

// DumpYesterdayTranscripts writes the transcripts of videos watched
// yesterday to cfg.Output and returns how many videos were listed.
func DumpYesterdayTranscripts(ctx context.Context, session *Session, cfg *config.Config) (int, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	live, err := pipeline.NewLiveFromConfig(ctx, cfg, session, logger.Discard())
	if err != nil {
		return 0, err
	}
	defer live.Close()
	return live.Run(ctx)
}
