package hook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/irchook/irchook/pkg/template"
)

// defaultContentType is sent when no Content-Type header template is
// configured.
const defaultContentType = "application/json"

// PublisherConfig configures a Publisher.
type PublisherConfig struct {
	// URL is the webhook destination. Must be a valid absolute URL.
	URL string

	// APIKey, when set, is sent as the X-Api-Key header on every request.
	APIKey string

	// BodyTemplate is the positional template rendered into the POST body.
	BodyTemplate string

	// Headers maps static header names to positional templates for their
	// values, rendered per capture set.
	Headers map[string]string

	// MaxConcurrent bounds in-flight requests per Publish call. Zero or
	// negative means one request per capture set with no limit.
	MaxConcurrent int

	// Timeout applies to the shared HTTP client. Zero means no timeout,
	// which matches the relay's documented behavior of stalling on a hung
	// destination rather than abandoning a request.
	Timeout time.Duration
}

// Publisher renders capture-group sets into webhook requests and fires them.
// All state is immutable after construction, so one Publisher is safe to
// share across calls; the HTTP client is reused for every dispatch.
type Publisher struct {
	endpoint      string
	apiKey        string
	bodyTemplate  string
	headers       map[string]string
	maxConcurrent int
	client        *http.Client
	logger        *slog.Logger
	onResult      func(DispatchResult)
}

// DispatchResult records the outcome of one webhook request. It is passed to
// the result callback, if any, after the request completes.
type DispatchResult struct {
	DeliveryID string
	StatusCode int // zero when the request never got a response
	Err        error
}

// PublisherOption customizes a Publisher.
type PublisherOption func(*Publisher)

// WithHTTPClient replaces the HTTP client, primarily for tests.
func WithHTTPClient(c *http.Client) PublisherOption {
	return func(p *Publisher) { p.client = c }
}

// WithResultCallback registers a callback invoked once per completed
// dispatch, success or failure. Callbacks may run concurrently.
func WithResultCallback(fn func(DispatchResult)) PublisherOption {
	return func(p *Publisher) { p.onResult = fn }
}

// NewPublisher validates the destination URL and builds a Publisher.
func NewPublisher(cfg PublisherConfig, logger *slog.Logger, opts ...PublisherOption) (*Publisher, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("webhook URL must be http or https, got %q", cfg.URL)
	}

	p := &Publisher{
		endpoint:      u.String(),
		apiKey:        cfg.APIKey,
		bodyTemplate:  cfg.BodyTemplate,
		headers:       cfg.Headers,
		maxConcurrent: cfg.MaxConcurrent,
		client:        &http.Client{Timeout: cfg.Timeout},
		logger:        logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish dispatches one webhook request per capture-group set. Requests run
// concurrently, bounded by MaxConcurrent, and Publish returns only after
// every request has completed. Individual failures (transport errors and
// non-2xx responses) are logged and reported to the result callback but
// never returned: a bad destination must not stop the relay loop or sibling
// requests. Each request is attempted exactly once.
func (p *Publisher) Publish(ctx context.Context, sets []CaptureSet) {
	if len(sets) == 0 {
		return
	}

	var g errgroup.Group
	if p.maxConcurrent > 0 {
		g.SetLimit(p.maxConcurrent)
	}
	for _, set := range sets {
		g.Go(func() error {
			p.dispatch(ctx, set)
			return nil
		})
	}
	// Errors are handled inside dispatch; the group only joins.
	_ = g.Wait()
}

// dispatch renders and sends a single request for one capture set.
func (p *Publisher) dispatch(ctx context.Context, set CaptureSet) {
	deliveryID := uuid.NewString()
	body := template.Render(p.bodyTemplate, set)
	headers := template.RenderAll(p.headers, set)

	p.logger.Debug("dispatching webhook",
		"delivery_id", deliveryID,
		"url", p.endpoint,
		"groups", len(set))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(body))
	if err != nil {
		p.finish(DispatchResult{DeliveryID: deliveryID, Err: err})
		return
	}
	req.Header.Set("Content-Type", defaultContentType)
	if p.apiKey != "" {
		req.Header.Set("X-Api-Key", p.apiKey)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.finish(DispatchResult{DeliveryID: deliveryID, Err: err})
		return
	}
	defer func() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	result := DispatchResult{DeliveryID: deliveryID, StatusCode: resp.StatusCode}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Err = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	p.finish(result)
}

// finish logs the outcome and notifies the result callback.
func (p *Publisher) finish(r DispatchResult) {
	if r.Err != nil {
		p.logger.Error("webhook dispatch failed",
			"delivery_id", r.DeliveryID,
			"status", r.StatusCode,
			"error", r.Err)
	} else {
		p.logger.Info("webhook dispatched",
			"delivery_id", r.DeliveryID,
			"status", r.StatusCode)
	}
	if p.onResult != nil {
		p.onResult(r)
	}
}
