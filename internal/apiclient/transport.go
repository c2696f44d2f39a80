package apiclient

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL matches the backend's local dev address.
	DefaultBaseURL     = "http://localhost:8080/api"
	defaultHTTPTimeout = 10 * time.Second
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func normalizeBaseURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultBaseURL
	}
	return strings.TrimSuffix(strings.TrimSpace(raw), "/")
}

// bearerTransport attaches the session token when one is available and
// otherwise sends the request anonymously.
type bearerTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.source == nil {
		return base.RoundTrip(req)
	}
	tok, err := t.source.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		return base.RoundTrip(req)
	}
	authed := &oauth2.Transport{Source: oauth2.StaticTokenSource(tok), Base: base}
	return authed.RoundTrip(req)
}

func resolveHTTPClient(client *http.Client, source oauth2.TokenSource) httpDoer {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if source == nil {
		return client
	}
	wrapped := *client
	wrapped.Transport = &bearerTransport{source: source, base: client.Transport}
	return &wrapped
}

func parseRetryAfter(raw string, now time.Time) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
