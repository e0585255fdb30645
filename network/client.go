// Package network provides the resilient HTTP client every outbound fetch
// goes through.
//
// Each request waits a random pacing delay, is sent with browser-like
// headers and a User-Agent rolled per attempt, is retried a fixed number of
// times with a fixed delay, and always comes back as a Response envelope:
// failures are data, never panics or returned errors.
package network

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/log"
)

// Client is safe for concurrent use. Its configuration is an immutable
// snapshot replaced atomically by UpdateConfig.
type Client struct {
	mu     sync.Mutex
	config atomic.Pointer[Config]
	http   *http.Client
	sleep  sleepFunc
}

// New merges opts over DefaultConfig and builds a client.
func New(opts Options) (*Client, error) {
	cfg, err := DefaultConfig().merge(opts)
	if err != nil {
		return nil, err
	}

	c := &Client{
		http: &http.Client{
			Transport: &userAgentTransport{next: newRouter()},
		},
		sleep: sleepContext,
	}
	c.config.Store(&cfg)

	return c, nil
}

// MustNew is New for options known to be valid.
func MustNew(opts Options) *Client {
	return lo.Must(New(opts))
}

var defaultClient = sync.OnceValue(func() *Client {
	return MustNew(Options{})
})

// Default returns the shared client built from DefaultConfig.
func Default() *Client {
	return defaultClient()
}

// Config returns a copy of the current configuration.
func (c *Client) Config() Config {
	return c.config.Load().clone()
}

// UpdateConfig merges opts into the live configuration. Requests already
// in flight keep the snapshot they started with.
func (c *Client) UpdateConfig(opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.config.Load().merge(opts)
	if err != nil {
		return err
	}

	c.config.Store(&next)

	proxy := "none"
	if next.Proxy != nil {
		proxy = next.Proxy.String()
	}
	log.WithFields(log.Fields{
		"proxy":   proxy,
		"headers": len(next.Headers),
		"retries": next.RetryTimes,
	}).Debug("client config updated")

	return nil
}

func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) Response[[]byte] {
	return Do[[]byte](ctx, c, http.MethodGet, url, nil, opts...)
}

func (c *Client) Post(ctx context.Context, url string, body any, opts ...RequestOption) Response[[]byte] {
	return Do[[]byte](ctx, c, http.MethodPost, url, body, opts...)
}

func (c *Client) Put(ctx context.Context, url string, body any, opts ...RequestOption) Response[[]byte] {
	return Do[[]byte](ctx, c, http.MethodPut, url, body, opts...)
}

func (c *Client) Delete(ctx context.Context, url string, opts ...RequestOption) Response[[]byte] {
	return Do[[]byte](ctx, c, http.MethodDelete, url, nil, opts...)
}

// Do performs one paced, retried request and decodes the body into T.
func Do[T any](ctx context.Context, c *Client, method, url string, body any, opts ...RequestOption) Response[T] {
	r, err := c.execute(ctx, method, url, body, newRequest(opts))
	if err != nil {
		return fail[T](err)
	}

	data, err := decode[T](r.body)
	if err != nil {
		return Response[T]{Error: err.Error(), Status: r.status}
	}

	return succeed(data, flattenHeader(r.header), r.status)
}

type reply struct {
	body   []byte
	header http.Header
	status int
}

func (c *Client) execute(ctx context.Context, method, rawURL string, body any, req *request) (*reply, error) {
	cfg := c.config.Load()

	target, err := resolveURL(rawURL, req.query)
	if err != nil {
		return nil, err
	}

	payload, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	if req.contentType != "" {
		contentType = req.contentType
	}

	entry := log.WithFields(log.Fields{"method": method, "url": target})

	delay := pacingDelay(cfg.PacingMin, cfg.PacingMax)
	entry.WithField("delay", delay).Debug("pacing request")
	if err := c.sleep(ctx, delay); err != nil {
		return nil, err
	}

	var result *reply
	err = retry(ctx, cfg.RetryTimes, cfg.RetryDelay, c.sleep, func(attempt int) error {
		entry.WithField("attempt", attempt+1).Debug("sending request")

		r, err := c.send(ctx, cfg, method, target, payload, contentType, req.headers)
		if err != nil {
			return err
		}

		result = r
		return nil
	})
	if err != nil {
		entry.WithField("status", statusOf(err)).Errorf("request failed: %v", err)
		return nil, err
	}

	entry.WithField("status", result.status).Info("request succeeded")
	return result, nil
}

// send performs exactly one attempt bounded by cfg.Timeout.
func (c *Client) send(
	ctx context.Context,
	cfg *Config,
	method, target string,
	payload []byte,
	contentType string,
	headers map[string]string,
) (*reply, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(withConfig(ctx, cfg), method, target, body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	for k, v := range BaseHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}
	if payload != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Method: method, URL: target, Status: resp.StatusCode, Err: ErrStatus}
	}

	return &reply{body: data, header: resp.Header, status: resp.StatusCode}, nil
}
