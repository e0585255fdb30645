package network

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Config is one immutable snapshot of client settings. A Client swaps whole
// snapshots, so a request sees the same Config from pacing to last retry.
type Config struct {
	// Timeout bounds every single attempt. Zero disables it.
	Timeout time.Duration
	// Proxy routes every request through host:port when set.
	Proxy *Proxy
	// Headers are sent with every request, over the base browser headers.
	Headers map[string]string
	// RetryTimes is how many times a failed attempt is repeated.
	RetryTimes int
	// RetryDelay is the fixed wait between attempts.
	RetryDelay time.Duration
	// PacingMin and PacingMax bound the random wait before each request.
	PacingMin time.Duration
	PacingMax time.Duration
	// UserAgents is the rotation pool. Empty means DefaultUserAgents.
	UserAgents UserAgentPool
	// Fingerprint presents a Chrome TLS ClientHello on direct HTTPS connections.
	Fingerprint bool
}

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryTimes = 3
	DefaultRetryDelay = time.Second
	DefaultPacingMin  = time.Second
	DefaultPacingMax  = 3 * time.Second
)

// BaseHeaders are sent with every request before caller headers are applied.
var BaseHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

// DefaultConfig returns the settings a zero Options produces.
func DefaultConfig() Config {
	return Config{
		Timeout:    DefaultTimeout,
		Headers:    map[string]string{},
		RetryTimes: DefaultRetryTimes,
		RetryDelay: DefaultRetryDelay,
		PacingMin:  DefaultPacingMin,
		PacingMax:  DefaultPacingMax,
	}
}

// Options is a partial Config. Unset fields keep their current value;
// Headers are merged key by key.
type Options struct {
	Timeout mo.Option[time.Duration]
	// Proxy is "host:port". An empty string removes the proxy.
	Proxy       mo.Option[string]
	Headers     map[string]string
	RetryTimes  mo.Option[int]
	RetryDelay  mo.Option[time.Duration]
	PacingMin   mo.Option[time.Duration]
	PacingMax   mo.Option[time.Duration]
	UserAgents  mo.Option[[]string]
	Fingerprint mo.Option[bool]
}

func (c Config) clone() Config {
	out := c
	out.Headers = maps.Clone(c.Headers)
	if out.Headers == nil {
		out.Headers = map[string]string{}
	}
	out.UserAgents = slices.Clone(c.UserAgents)
	if c.Proxy != nil {
		p := *c.Proxy
		out.Proxy = &p
	}
	return out
}

func (c Config) userAgents() UserAgentPool {
	if len(c.UserAgents) == 0 {
		return DefaultUserAgents
	}
	return c.UserAgents
}

// merge applies o over a copy of c and validates the result.
func (c Config) merge(o Options) (Config, error) {
	next := c.clone()

	if v, ok := o.Timeout.Get(); ok {
		next.Timeout = v
	}

	if v, ok := o.Proxy.Get(); ok {
		if v == "" {
			next.Proxy = nil
		} else {
			p, err := ParseProxy(v)
			if err != nil {
				return Config{}, err
			}
			next.Proxy = p
		}
	}

	for k, v := range o.Headers {
		next.Headers[http.CanonicalHeaderKey(k)] = v
	}

	if v, ok := o.RetryTimes.Get(); ok {
		next.RetryTimes = v
	}

	if v, ok := o.RetryDelay.Get(); ok {
		next.RetryDelay = v
	}

	if v, ok := o.PacingMin.Get(); ok {
		next.PacingMin = v
	}

	if v, ok := o.PacingMax.Get(); ok {
		next.PacingMax = v
	}

	if v, ok := o.UserAgents.Get(); ok {
		next.UserAgents = lo.Compact(v)
	}

	if v, ok := o.Fingerprint.Get(); ok {
		next.Fingerprint = v
	}

	if err := next.validate(); err != nil {
		return Config{}, err
	}

	return next, nil
}

func (c Config) validate() error {
	negative := func(field string, d time.Duration) error {
		return &ConfigError{Field: field, Value: d.String(), Err: fmt.Errorf("%w: must not be negative", ErrInvalidValue)}
	}

	switch {
	case c.Timeout < 0:
		return negative("timeout", c.Timeout)
	case c.RetryDelay < 0:
		return negative("retry delay", c.RetryDelay)
	case c.PacingMin < 0:
		return negative("pacing minimum", c.PacingMin)
	case c.RetryTimes < 0:
		return &ConfigError{Field: "retry times", Value: strconv.Itoa(c.RetryTimes), Err: fmt.Errorf("%w: must not be negative", ErrInvalidValue)}
	case c.PacingMax < c.PacingMin:
		return &ConfigError{
			Field: "pacing maximum",
			Value: c.PacingMax.String(),
			Err:   fmt.Errorf("%w: below pacing minimum %s", ErrInvalidValue, c.PacingMin),
		}
	}

	return nil
}
