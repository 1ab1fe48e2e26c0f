package http

import (
	"context"
	"testing"
	"time"
)

func TestPacerDisabled(t *testing.T) {
	for _, rps := range []float64{0, -1} {
		p := NewPacer(rps)
		if p.Enabled() {
			t.Errorf("NewPacer(%v).Enabled() = true", rps)
		}
		start := time.Now()
		for i := 0; i < 5; i++ {
			if err := p.Wait(context.Background(), "https://www.youtube.com/api/timedtext"); err != nil {
				t.Fatalf("Wait() error = %v", err)
			}
		}
		if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
			t.Errorf("disabled pacer waited %v", elapsed)
		}
	}
}

func TestNilPacer(t *testing.T) {
	var p *Pacer
	if err := p.Wait(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("nil pacer Wait() error = %v", err)
	}
}

func TestPacerSpacesRequests(t *testing.T) {
	p := NewPacer(20) // one token every 50ms
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx, "https://www.youtube.com/a"); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("3 paced requests took %v, want >= 80ms", elapsed)
	}
}

func TestPacerPerHost(t *testing.T) {
	p := NewPacer(1)
	ctx := context.Background()

	if err := p.Wait(ctx, "https://a.example.com/x"); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := p.Wait(ctx, "https://b.example.com:8443/y"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("different host should not wait, waited %v", elapsed)
	}
	if len(p.limiters) != 2 {
		t.Errorf("expected 2 limiters, got %d", len(p.limiters))
	}
}

func TestPacerContextCanceled(t *testing.T) {
	p := NewPacer(0.5)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := p.Wait(ctx, "https://example.com"); err != nil {
		t.Fatalf("first Wait() should use the burst token, got %v", err)
	}
	if err := p.Wait(ctx, "https://example.com"); err == nil {
		t.Error("expected error when the wait exceeds the context deadline")
	}
}

func TestExtractHost(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/api/timedtext?v=x", "www.youtube.com"},
		{"http://127.0.0.1:8080/path", "127.0.0.1"},
		{"not a url", "unknown"},
		{"://bad", "unknown"},
	}
	for _, tt := range tests {
		if got := extractHost(tt.url); got != tt.want {
			t.Errorf("extractHost(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
