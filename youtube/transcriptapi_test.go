package youtube

import (
	"context"
	"errors"
	"testing"
)

// stubGetter records calls and returns canned transcript text.
type stubGetter struct {
	text      string
	err       error
	videoIDs  []string
	languages []string
}

func (g *stubGetter) GetTranscript(videoID string, languages []string, preserveFormatting bool) (string, error) {
	g.videoIDs = append(g.videoIDs, videoID)
	g.languages = languages
	return g.text, g.err
}

func TestTranscriptAPISourceCaptions(t *testing.T) {
	g := &stubGetter{text: "hello world\n\nsecond line\r\n  \nthird\n"}
	src := newTranscriptAPISource(g, []string{"de", " en "})

	entries, err := src.Captions(context.Background(), "vid123")
	if err != nil {
		t.Fatalf("Captions() error = %v", err)
	}

	want := []string{"hello world", "second line", "third"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i].Text != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Text, want[i])
		}
	}
	if len(g.videoIDs) != 1 || g.videoIDs[0] != "vid123" {
		t.Errorf("videoIDs = %v", g.videoIDs)
	}
	if len(g.languages) != 2 || g.languages[0] != "de" || g.languages[1] != "en" {
		t.Errorf("languages = %v, want [de en]", g.languages)
	}
}

func TestTranscriptAPISourceDefaultLanguage(t *testing.T) {
	src := newTranscriptAPISource(&stubGetter{}, []string{"", " "})
	if got := src.Languages(); len(got) != 1 || got[0] != "en" {
		t.Errorf("Languages() = %v, want [en]", got)
	}
}

func TestTranscriptAPISourceErrors(t *testing.T) {
	boom := errors.New("no transcripts were found for any of the requested language codes")

	tests := []struct {
		name    string
		getter  *stubGetter
		videoID string
		wantErr error
	}{
		{"library error", &stubGetter{err: boom}, "v", boom},
		{"blank transcript", &stubGetter{text: "\n \n"}, "v", ErrNoCaptions},
		{"empty id", &stubGetter{text: "x"}, "", ErrEmptyVideoID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTranscriptAPISource(tt.getter, nil).Captions(context.Background(), tt.videoID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTranscriptAPISourceCanceled(t *testing.T) {
	g := &stubGetter{text: "x"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTranscriptAPISource(g, nil).Captions(ctx, "v"); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if len(g.videoIDs) != 0 {
		t.Errorf("library should not be called, got %v", g.videoIDs)
	}
}

func TestTranscriptAPISourceWithFetcher(t *testing.T) {
	g := &stubGetter{text: "line one\nline two"}
	r := NewTranscriptFetcher(newTranscriptAPISource(g, nil)).Fetch(context.Background(), "v1")
	if !r.OK() || len(r.Lines) != 2 || r.Lines[1] != "line two" {
		t.Errorf("result = %+v", r)
	}
}
