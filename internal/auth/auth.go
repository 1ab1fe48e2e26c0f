// Package auth runs the OAuth installed-app flow and hands out the
// resulting authorized session.
package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ReadOnlyScope grants read access to the user's YouTube account.
const ReadOnlyScope = "https://www.googleapis.com/auth/youtube.readonly"

// Sentinel errors for the authorization flow.
var (
	ErrNoCode        = errors.New("auth: no authorization code entered")
	ErrStateMismatch = errors.New("auth: state mismatch in redirect URL")
	ErrDenied        = errors.New("auth: authorization denied")
)

// Session is an authorized handle to Google APIs. It is passed explicitly to
// everything that talks to the user's account.
type Session struct {
	client *http.Client
}

// NewSession wraps an HTTP client that already attaches credentials.
func NewSession(client *http.Client) *Session {
	return &Session{client: client}
}

// Client returns the authorized HTTP client.
func (s *Session) Client() *http.Client {
	return s.client
}

// LoadClientConfig reads an OAuth client-secret file downloaded from the
// Google Cloud console.
func LoadClientConfig(path string, scopes ...string) (*oauth2.Config, error) {
	if len(scopes) == 0 {
		scopes = []string{ReadOnlyScope}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets %s: %w", path, err)
	}
	return cfg, nil
}

// ConsoleFlow asks the user to open the consent URL and paste back either
// the authorization code or the whole redirect URL.
type ConsoleFlow struct {
	In  io.Reader
	Out io.Writer
}

// Authenticate runs the flow against cfg and returns an authorized session.
func (f ConsoleFlow) Authenticate(ctx context.Context, cfg *oauth2.Config) (*Session, error) {
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	fmt.Fprintf(f.Out, "Open this URL in your browser and authorize access:\n\n%s\n\n", authURL)
	fmt.Fprint(f.Out, "Paste the authorization code or the full redirect URL: ")

	line, err := bufio.NewReader(f.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	code, err := parseAuthCode(line, state)
	if err != nil {
		return nil, err
	}

	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return NewSession(cfg.Client(ctx, tok)), nil
}

// Authenticate loads the client secret file at secretsPath and runs the
// console flow on in/out.
func Authenticate(ctx context.Context, secretsPath string, in io.Reader, out io.Writer) (*Session, error) {
	cfg, err := LoadClientConfig(secretsPath)
	if err != nil {
		return nil, err
	}
	return ConsoleFlow{In: in, Out: out}.Authenticate(ctx, cfg)
}

// parseAuthCode accepts a bare code or a redirect URL carrying code and
// state query parameters.
func parseAuthCode(input, state string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoCode
	}
	if !strings.Contains(input, "://") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("parse redirect URL: %w", err)
	}
	q := u.Query()
	if e := q.Get("error"); e != "" {
		return "", fmt.Errorf("%w: %s", ErrDenied, e)
	}
	if got := q.Get("state"); got != "" && got != state {
		return "", ErrStateMismatch
	}
	code := q.Get("code")
	if code == "" {
		return "", ErrNoCode
	}
	return code, nil
}
