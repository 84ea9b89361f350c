package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	appmiddleware "github.com/linkagehub/marketplace-api/internal/middleware"
)

const (
	userAgent      = "marketplace-api"
	deliverTimeout = 5 * time.Second
)

// Client delivers events to an HTTP collector endpoint asynchronously.
type Client struct {
	httpClient *http.Client
	url        string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the Bearer token for authenticated delivery.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates an analytics client posting to the given collector URL.
func NewClient(httpClient *http.Client, url string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		url:        url,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Track delivers the event in the background. The delivery context is
// detached from the request context so in-flight events survive the
// response being written; failures are logged, never surfaced.
func (c *Client) Track(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	go func() {
		deliverCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliverTimeout)
		defer cancel()

		if err := c.deliver(deliverCtx, event); err != nil {
			appmiddleware.LogWarn(deliverCtx, "analytics delivery failed",
				zap.String("event", event.Name), zap.Error(err))
		}
	}()
}

func (c *Client) deliver(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return nil
}

// Compile-time interface check
var _ Tracker = (*Client)(nil)
