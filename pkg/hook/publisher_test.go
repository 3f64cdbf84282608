package hook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irchook/irchook/pkg/logging"
)

func newTestPublisher(t *testing.T, cfg PublisherConfig, opts ...PublisherOption) *Publisher {
	t.Helper()
	p, err := NewPublisher(cfg, logging.Nop(), opts...)
	require.NoError(t, err)
	return p
}

func TestNewPublisherRejectsBadURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "example.com/hook"},
		{"wrong scheme", "ftp://example.com/hook"},
		{"unparseable", "http://exa mple.com/\x00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPublisher(PublisherConfig{URL: tt.url}, logging.Nop())
			assert.Error(t, err)
		})
	}
}

func TestPublishRendersBodyAndHeaders(t *testing.T) {
	var mu sync.Mutex
	var bodies []string
	var apiKeys []string
	var custom []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		apiKeys = append(apiKeys, r.Header.Get("X-Api-Key"))
		custom = append(custom, r.Header.Get("X-Match-Group"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := newTestPublisher(t, PublisherConfig{
		URL:          srv.URL,
		APIKey:       "secret",
		BodyTemplate: `{"full": "${0}", "group": "${1}"}`,
		Headers:      map[string]string{"X-Match-Group": "${1}"},
	})

	p.Publish(context.Background(), []CaptureSet{{"1capture match2", "capture match"}})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 1)
	assert.Equal(t, `{"full": "1capture match2", "group": "capture match"}`, bodies[0])
	assert.Equal(t, "secret", apiKeys[0])
	assert.Equal(t, "capture match", custom[0])
}

func TestPublishDispatchesAllSetsConcurrently(t *testing.T) {
	const n = 8

	var total atomic.Int32
	var inFlight atomic.Int32
	var maxInFlight atomic.Int32

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		cur := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			prev := maxInFlight.Load()
			if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
				break
			}
		}
		<-release
		total.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := newTestPublisher(t, PublisherConfig{URL: srv.URL, BodyTemplate: "${0}"})

	sets := make([]CaptureSet, n)
	for i := range sets {
		sets[i] = CaptureSet{"match"}
	}

	done := make(chan struct{})
	go func() {
		p.Publish(context.Background(), sets)
		close(done)
	}()

	// All requests must be in flight at once before any is released.
	require.Eventually(t, func() bool { return inFlight.Load() == n }, 5*time.Second, 10*time.Millisecond)
	select {
	case <-done:
		t.Fatal("Publish returned before requests completed")
	default:
	}

	close(release)
	<-done

	assert.Equal(t, int32(n), total.Load())
	assert.Equal(t, int32(n), maxInFlight.Load())
}

func TestPublishRespectsConcurrencyLimit(t *testing.T) {
	var inFlight atomic.Int32
	var maxInFlight atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		cur := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			prev := maxInFlight.Load()
			if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
				break
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := newTestPublisher(t, PublisherConfig{URL: srv.URL, BodyTemplate: "${0}", MaxConcurrent: 2})

	sets := make([]CaptureSet, 16)
	for i := range sets {
		sets[i] = CaptureSet{"match"}
	}
	p.Publish(context.Background(), sets)

	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
}

func TestPublishFaultIsolation(t *testing.T) {
	var requests atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests.Add(1)
		if string(body) == "poison" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var mu sync.Mutex
	var results []DispatchResult
	p := newTestPublisher(t, PublisherConfig{URL: srv.URL, BodyTemplate: "${0}"},
		WithResultCallback(func(r DispatchResult) {
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
		}))

	p.Publish(context.Background(), []CaptureSet{{"ok one"}, {"poison"}, {"ok two"}})

	assert.Equal(t, int32(3), requests.Load())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 3)

	var failed, succeeded int
	for _, r := range results {
		assert.NotEmpty(t, r.DeliveryID)
		if r.Err != nil {
			failed++
			assert.Equal(t, http.StatusInternalServerError, r.StatusCode)
		} else {
			succeeded++
			assert.Equal(t, http.StatusOK, r.StatusCode)
		}
	}
	assert.Equal(t, 1, failed, "only the poison request fails")
	assert.Equal(t, 2, succeeded, "siblings of a failed dispatch still complete")
}

func TestPublishTransportErrorDoesNotPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close() // connection refused from here on

	var result DispatchResult
	var got sync.WaitGroup
	got.Add(1)
	p := newTestPublisher(t, PublisherConfig{URL: srv.URL, BodyTemplate: "${0}"},
		WithResultCallback(func(r DispatchResult) {
			result = r
			got.Done()
		}))

	// Must not panic or return an error to the caller.
	p.Publish(context.Background(), []CaptureSet{{"match"}})
	got.Wait()

	assert.Error(t, result.Err)
	assert.Zero(t, result.StatusCode)
}

func TestPublishEmptyInputIsNoop(t *testing.T) {
	p := newTestPublisher(t, PublisherConfig{URL: "http://127.0.0.1:0", BodyTemplate: "${0}"})
	p.Publish(context.Background(), nil)
}
