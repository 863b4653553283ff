package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRetry(t *testing.T) {
	t.Run("recovers from transient 5xx", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			fmt.Fprint(w, `{"ok": true}`)
		}))
		defer srv.Close()

		var out struct {
			OK bool `json:"ok"`
		}
		err := getJSON(context.Background(), srv.Client(), srv.URL, nil, &out)
		require.NoError(t, err, "Third attempt should succeed")
		assert.True(t, out.OK)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry 4xx", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		err := getJSON(context.Background(), srv.Client(), srv.URL, nil, nil)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, int32(1), calls.Load(), "Client errors are permanent")
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		err := getJSON(context.Background(), srv.Client(), srv.URL, nil, nil)
		require.Error(t, err)
		assert.False(t, IsNotFound(err))
		assert.Equal(t, int32(requestRetries+1), calls.Load())
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := getJSON(ctx, srv.Client(), srv.URL, nil, nil)
		assert.Error(t, err)
	})

	t.Run("retries preserve the request body", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"q": "retry"}`, string(body), "Body should be intact on the second attempt")
			fmt.Fprint(w, `{}`)
		}))
		defer srv.Close()

		err := postJSON(context.Background(), srv.Client(), srv.URL, []byte(`{"q": "retry"}`), nil)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})
}
