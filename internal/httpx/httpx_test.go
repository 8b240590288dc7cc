package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type flakyRoundTripper struct {
	failures int
	calls    int
	agents   []string
}

func (f *flakyRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	f.calls++
	f.agents = append(f.agents, r.Header.Get("User-Agent"))
	if f.calls <= f.failures {
		return nil, errors.New("connection reset")
	}
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
}

func TestRoundTripRetriesGet(t *testing.T) {
	base := &flakyRoundTripper{failures: 2}
	tr := &Transport{Base: base, RetryMax: 2}

	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	resp, err := tr.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	resp.Body.Close()
	if base.calls != 3 {
		t.Errorf("calls = %d, want 3", base.calls)
	}
	for _, ua := range base.agents {
		if ua != UserAgent {
			t.Errorf("User-Agent = %q, want %q", ua, UserAgent)
		}
	}
	if req.Header.Get("User-Agent") != "" {
		t.Error("caller request header was modified")
	}
}

func TestRoundTripGivesUpAfterRetryMax(t *testing.T) {
	base := &flakyRoundTripper{failures: 10}
	tr := &Transport{Base: base, RetryMax: 1}

	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	if _, err := tr.RoundTrip(req); err == nil {
		t.Fatal("expected error")
	}
	if base.calls != 2 {
		t.Errorf("calls = %d, want 2", base.calls)
	}
}

func TestRoundTripDoesNotRetryPost(t *testing.T) {
	base := &flakyRoundTripper{failures: 1}
	tr := &Transport{Base: base, RetryMax: 3}

	req, _ := http.NewRequest(http.MethodPost, "http://example.invalid/", strings.NewReader("x"))
	if _, err := tr.RoundTrip(req); err == nil {
		t.Fatal("expected the single failure to surface")
	}
	if base.calls != 1 {
		t.Errorf("calls = %d, want 1", base.calls)
	}
}

func TestRoundTripStopsOnCancel(t *testing.T) {
	base := &flakyRoundTripper{failures: 10}
	tr := &Transport{Base: base, RetryMax: 5}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.invalid/", nil)
	if _, err := tr.RoundTrip(req); err == nil {
		t.Fatal("expected error")
	}
	if base.calls != 1 {
		t.Errorf("calls = %d, want 1 after cancellation", base.calls)
	}
}

func TestNewClientKeepsCallerAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := NewClient(0)
	if c.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.Timeout, DefaultTimeout)
	}
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("User-Agent", "custom")
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
	if got != "custom" {
		t.Errorf("server saw User-Agent %q, want custom", got)
	}
}
