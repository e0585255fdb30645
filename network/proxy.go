package network

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Proxy is an HTTP proxy endpoint.
type Proxy struct {
	Host string
	Port int
}

// ParseProxy parses "host:port". Anything else is rejected here rather than
// surfacing later as a connect failure.
func ParseProxy(s string) (*Proxy, error) {
	invalid := func(reason string) error {
		return &ConfigError{Field: "proxy", Value: s, Err: fmt.Errorf("%w: %s", ErrInvalidProxy, reason)}
	}

	host, rawPort, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return nil, invalid(err.Error())
	}

	if host == "" {
		return nil, invalid("missing host")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return nil, invalid("port is not a number")
	}

	if port < 1 || port > 65535 {
		return nil, invalid("port out of range")
	}

	return &Proxy{Host: host, Port: port}, nil
}

func (p *Proxy) String() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// URL is the proxy address as used by http.Transport.
func (p *Proxy) URL() *url.URL {
	return &url.URL{Scheme: "http", Host: p.String()}
}
