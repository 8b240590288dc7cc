// Package httpx builds the HTTP client shared by the catalog fetcher and
// the image loader: a fixed User-Agent, bounded retries for replayable
// requests and an overall timeout.
package httpx

import (
	"errors"
	"net/http"
	"time"
)

const (
	DefaultTimeout  = 20 * time.Second
	defaultRetryMax = 2
)

// UserAgent is sent when the caller has not set one.
const UserAgent = "maskr/1.0 (+https://github.com/justyntemme/maskr)"

// Transport retries GET/HEAD requests without a body on transport errors.
// Responses with an HTTP status, including 5xx, are returned as-is.
type Transport struct {
	Base http.RoundTripper

	// RetryMax is the number of retries after the first attempt.
	RetryMax int

	// Backoff is the pause between attempts; zero retries immediately.
	Backoff time.Duration
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	canRetry := (req.Method == http.MethodGet || req.Method == http.MethodHead) && req.Body == nil
	max := t.RetryMax
	if max < 0 || !canRetry {
		max = 0
	}

	var lastErr error
	for attempt := 0; attempt <= max; attempt++ {
		if attempt > 0 && t.Backoff > 0 {
			timer := time.NewTimer(t.Backoff)
			select {
			case <-req.Context().Done():
				timer.Stop()
				return nil, lastErr
			case <-timer.C:
			}
		}

		r := req.Clone(req.Context())
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", UserAgent)
		}

		resp, err := t.Base.RoundTrip(r)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if req.Context().Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// NewClient returns a client using Transport over a default http.Transport.
// A non-positive timeout uses DefaultTimeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		MaxIdleConnsPerHost:   4,
	}
	return &http.Client{
		Transport: &Transport{
			Base:     base,
			RetryMax: defaultRetryMax,
			Backoff:  250 * time.Millisecond,
		},
		Timeout: timeout,
	}
}
