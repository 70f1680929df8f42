// Package iohttp is the HTTP plumbing shared by the external service
// clients. Every client retries through the same policy, parameterized
// per call site, so transient-failure behavior stays uniform across
// the encyclopedia, knowledge graph and geocoder.
package iohttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// ErrNotFound marks an HTTP 404. Callers that treat missing resources
// as data (pageviews for an unviewed article) test for it with
// errors.Is; everyone else propagates it as a failure.
var ErrNotFound = errors.New("resource not found")

// Policy parameterizes the shared retry behavior for one call site.
type Policy struct {
	// MaxTries caps attempts, the first one included.
	MaxTries uint

	// InitialInterval seeds the exponential backoff.
	InitialInterval time.Duration

	// MaxInterval caps a single backoff pause.
	MaxInterval time.Duration
}

// DefaultPolicy is three attempts with a one second initial pause,
// matching the request guidance of the consumed services.
func DefaultPolicy() Policy {
	return Policy{
		MaxTries:        3,
		InitialInterval: time.Second,
		MaxInterval:     10 * time.Second,
	}
}

// NewClient returns an HTTP client for API calls. The timeout caps a
// single attempt; the overall deadline comes from the caller's
// context.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

// RetryableStatus reports whether a status code is worth retrying:
// request timeout, rate limiting, or a server-side failure.
func RetryableStatus(code int) bool {
	if code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500
}

// Do runs one HTTP call under the retry policy and returns the
// response body. newReq builds a fresh request for every attempt, so
// request bodies are safe to re-send. Transport errors and retryable
// statuses back off and retry; any other non-2xx status fails
// immediately.
func Do(
	ctx context.Context,
	client *http.Client,
	policy Policy,
	newReq func(ctx context.Context) (*http.Request, error),
) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := newReq(ctx)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := client.Do(req)
		if err != nil {
			// Timeouts and connection failures are transient.
			return nil, err
		}
		defer resp.Body.Close()

		code := resp.StatusCode
		switch {
		case RetryableStatus(code):
			return nil, fmt.Errorf(
				"status %d from %s", code, req.URL.Host)
		case code == http.StatusNotFound:
			return nil, backoff.Permanent(fmt.Errorf(
				"%s: %w", req.URL.Path, ErrNotFound))
		case code < 200 || code > 299:
			return nil, backoff.Permanent(fmt.Errorf(
				"status %d from %s", code, req.URL.Host))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			// A truncated body is as transient as a failed dial.
			return nil, err
		}
		return body, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = policy.InitialInterval
	bo.MaxInterval = policy.MaxInterval

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(policy.MaxTries),
	)
}

// Get fetches rawURL under the retry policy with the given headers.
func Get(
	ctx context.Context,
	client *http.Client,
	policy Policy,
	rawURL string,
	header http.Header,
) ([]byte, error) {
	return Do(ctx, client, policy,
		func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(
				ctx, http.MethodGet, rawURL, nil)
			if err != nil {
				return nil, err
			}
			for k, vals := range header {
				for _, v := range vals {
					req.Header.Add(k, v)
				}
			}
			return req, nil
		})
}
