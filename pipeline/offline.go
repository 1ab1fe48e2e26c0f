package pipeline

import (
	"fmt"
	"io"
	"time"

	"ythistory/history"
	"ythistory/internal/logger"
)

// RecentRecords loads the export at path and returns the records inside the
// 7-day window ending at now, in file order.
func RecentRecords(path string, now time.Time, log *logger.Logger) ([]history.Record, error) {
	if log == nil {
		log = logger.Discard()
	}
	export, err := history.LoadExport(path)
	if err != nil {
		return nil, err
	}
	if export.Skipped > 0 {
		log.Debug("skipped malformed history entries", "path", path, "count", export.Skipped)
	}

	recent := history.RecentWindow(now).Filter(export.Records)
	log.Debug("filtered history", "loaded", len(export.Records), "recent", len(recent))
	return recent, nil
}

// WriteListing writes one "[DD-MM-YY] title channel" line per record.
func WriteListing(w io.Writer, records []history.Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.Line()); err != nil {
			return err
		}
	}
	return nil
}

// Recent runs the offline listing: it captures now once, filters the export
// at path and prints the result to w. It returns the number of lines printed.
func Recent(w io.Writer, path string, now func() time.Time, log *logger.Logger) (int, error) {
	records, err := RecentRecords(path, now(), log)
	if err != nil {
		return 0, err
	}
	if err := WriteListing(w, records); err != nil {
		return 0, fmt.Errorf("write listing: %w", err)
	}
	return len(records), nil
}
