package network

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the snapshot the request was started with.
func configFrom(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	def := DefaultConfig()
	return &def
}

// userAgentTransport re-rolls the User-Agent before every send, so each
// retry may present a different browser.
type userAgentTransport struct {
	next http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ua := configFrom(req.Context()).userAgents().Pick()

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", ua)

	return t.next.RoundTrip(req)
}

// router sends fingerprinted HTTPS traffic through uTLS and everything
// else, including all proxied traffic, through the standard transport.
type router struct {
	direct      http.RoundTripper
	fingerprint http.RoundTripper
}

func newRouter() *router {
	return &router{
		direct:      newDirectTransport(),
		fingerprint: newFingerprintTransport(nil),
	}
}

func (r *router) RoundTrip(req *http.Request) (*http.Response, error) {
	cfg := configFrom(req.Context())
	if cfg.Fingerprint && cfg.Proxy == nil && req.URL.Scheme == "https" {
		return r.fingerprint.RoundTrip(req)
	}
	return r.direct.RoundTrip(req)
}

// newDirectTransport tunes a clone of the default transport for scraping
// workloads and resolves the proxy from the request's config snapshot.
func newDirectTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	t.Proxy = func(req *http.Request) (*url.URL, error) {
		if p := configFrom(req.Context()).Proxy; p != nil {
			return p.URL(), nil
		}
		return http.ProxyFromEnvironment(req)
	}
	return t
}
