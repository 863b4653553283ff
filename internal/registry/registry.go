// Package registry talks to the upstream package data sources: the npm
// registry, the npm downloads API, GitHub, OSV and bundlephobia. Each
// source has a small typed client; Fetcher assembles their responses
// into the snapshot shapes the core consumes.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	requestRetries  = 3
	retryBaseDelay  = 200 * time.Millisecond
	userAgentHeader = "pkgpulse (+https://github.com/pkgpulse/pkgpulse)"
)

// statusError reports a non-2xx upstream response.
type statusError struct {
	URL    string
	Status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.URL, e.Status)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// httpJSON issues the request produced by build and decodes the JSON
// body into out. Transient failures (network errors, 5xx, 429) are
// retried with exponential backoff; other non-2xx statuses abort
// immediately. The request is rebuilt on every attempt so bodies are
// safe to retry.
func httpJSON(ctx context.Context, client *http.Client, build func() (*http.Request, error), out any) error {
	op := func() error {
		req, err := build()
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := client.Do(req.WithContext(ctx))
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			return &statusError{URL: req.URL.String(), Status: resp.StatusCode}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			return backoff.Permanent(&statusError{URL: req.URL.String(), Status: resp.StatusCode})
		}
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s: %w", req.URL, err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryBaseDelay
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, requestRetries), ctx)
	return backoff.Retry(op, policy)
}

func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, out any) error {
	build := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgentHeader)
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	}
	return httpJSON(ctx, client, build, out)
}

func postJSON(ctx context.Context, client *http.Client, url string, body []byte, out any) error {
	build := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgentHeader)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}
	return httpJSON(ctx, client, build, out)
}
