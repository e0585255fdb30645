package network

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

// errNotH2 means the server picked a protocol other than h2 during ALPN.
var errNotH2 = errors.New("server did not negotiate h2")

// dialError marks a failure that happened before any request byte was
// written, so the request can safely be sent again on another connection.
type dialError struct {
	err error
}

func (e *dialError) Error() string { return e.err.Error() }
func (e *dialError) Unwrap() error { return e.err }

// fingerprintTransport speaks HTTPS with Chrome 120's ClientHello, which
// anti-bot CDNs accept where Go's own handshake is rejected. HTTP/2 is tried
// first; when the connection cannot be set up for h2 the request goes over
// HTTP/1.1 instead.
type fingerprintTransport struct {
	h2 http.RoundTripper
	h1 http.RoundTripper
}

// newFingerprintTransport builds the uTLS transports. A nil roots uses the
// system pool.
func newFingerprintTransport(roots *x509.CertPool) *fingerprintTransport {
	return &fingerprintTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				conn, err := dialChrome(ctx, network, addr, roots, nil)
				if err != nil {
					return nil, &dialError{err: err}
				}

				if proto := conn.ConnectionState().NegotiatedProtocol; proto != http2.NextProtoTLS {
					conn.Close()
					return nil, &dialError{err: fmt.Errorf("%w (got %q)", errNotH2, proto)}
				}

				return conn, nil
			},
		},
		h1: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				conn, err := dialChrome(ctx, network, addr, roots, []string{"http/1.1"})
				if err != nil {
					return nil, err
				}
				return conn, nil
			},
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

// RoundTrip sends req once. Only connection setup failures of the h2 path
// lead to a second try over HTTP/1.1; anything later is returned as is.
func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	var derr *dialError
	if !errors.As(err, &derr) || req.Context().Err() != nil {
		return nil, err
	}

	fallback := req.Clone(req.Context())
	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return nil, err
		}

		body, berr := req.GetBody()
		if berr != nil {
			return nil, fmt.Errorf("rewind body for http/1.1 fallback: %w", berr)
		}
		fallback.Body = body
	}

	return t.h1.RoundTrip(fallback)
}

// dialChrome opens a TCP connection and performs a uTLS handshake with the
// HelloChrome_120 fingerprint. A non-empty nextProtos replaces the ALPN list
// of the preset, which otherwise always offers h2.
func dialChrome(ctx context.Context, network, addr string, roots *x509.CertPool, nextProtos []string) (*utls.UConn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	config := &utls.Config{
		ServerName: host,
		RootCAs:    roots,
		MinVersion: tls.VersionTLS12,
	}

	var tlsConn *utls.UConn
	if len(nextProtos) == 0 {
		tlsConn = utls.UClient(conn, config, utls.HelloChrome_120)
	} else {
		spec, err := chromeSpec(nextProtos)
		if err != nil {
			conn.Close()
			return nil, err
		}

		tlsConn = utls.UClient(conn, config, utls.HelloCustom)
		if err := tlsConn.ApplyPreset(&spec); err != nil {
			conn.Close()
			return nil, fmt.Errorf("apply chrome preset: %w", err)
		}
	}

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}

// chromeSpec is the HelloChrome_120 spec with ALPN (and ALPS) limited to protos.
func chromeSpec(protos []string) (utls.ClientHelloSpec, error) {
	spec, err := utls.UTLSIdToSpec(utls.HelloChrome_120)
	if err != nil {
		return utls.ClientHelloSpec{}, fmt.Errorf("chrome spec: %w", err)
	}

	for _, ext := range spec.Extensions {
		switch e := ext.(type) {
		case *utls.ALPNExtension:
			e.AlpnProtocols = protos
		case *utls.ApplicationSettingsExtension:
			e.SupportedProtocols = protos
		}
	}

	return spec, nil
}
