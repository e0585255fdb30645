package network

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// stubTransport answers with a fixed error, or 200 and the request body.
type stubTransport struct {
	err    error
	calls  int
	bodies []string
	agents []string
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.calls++
	s.agents = append(s.agents, req.Header.Get("User-Agent"))
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		s.bodies = append(s.bodies, string(b))
	}
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Header: http.Header{}, Request: req}, nil
}

func requestWith(cfg Config, method, url, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, _ := http.NewRequestWithContext(withConfig(context.Background(), &cfg), method, url, r)
	return req
}

func TestRouter(t *testing.T) {
	Convey("Given a router with stub transports", t, func() {
		direct, fp := &stubTransport{}, &stubTransport{}
		r := &router{direct: direct, fingerprint: fp}

		Convey("Plain configs use the direct transport", func() {
			_, err := r.RoundTrip(requestWith(DefaultConfig(), http.MethodGet, "https://detail.1688.com", ""))
			So(err, ShouldBeNil)
			So(direct.calls, ShouldEqual, 1)
			So(fp.calls, ShouldEqual, 0)
		})

		Convey("Fingerprinted HTTPS uses uTLS", func() {
			cfg := DefaultConfig()
			cfg.Fingerprint = true
			_, _ = r.RoundTrip(requestWith(cfg, http.MethodGet, "https://detail.1688.com", ""))
			So(fp.calls, ShouldEqual, 1)
		})

		Convey("Fingerprinting never applies to plain HTTP", func() {
			cfg := DefaultConfig()
			cfg.Fingerprint = true
			_, _ = r.RoundTrip(requestWith(cfg, http.MethodGet, "http://detail.1688.com", ""))
			So(direct.calls, ShouldEqual, 1)
		})

		Convey("A proxy disables fingerprinting", func() {
			cfg := DefaultConfig()
			cfg.Fingerprint = true
			cfg.Proxy = &Proxy{Host: "127.0.0.1", Port: 7890}
			_, _ = r.RoundTrip(requestWith(cfg, http.MethodGet, "https://detail.1688.com", ""))
			So(direct.calls, ShouldEqual, 1)
			So(fp.calls, ShouldEqual, 0)
		})
	})
}

func TestFingerprintFallback(t *testing.T) {
	Convey("Given an HTTP/2 transport that cannot set up a connection", t, func() {
		h2 := &stubTransport{err: &dialError{err: errNotH2}}
		h1 := &stubTransport{}
		tr := &fingerprintTransport{h2: h2, h1: h1}

		Convey("The request is sent over HTTP/1.1 with its body", func() {
			resp, err := tr.RoundTrip(requestWith(DefaultConfig(), http.MethodPost, "https://example.com", "payload"))
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(h1.calls, ShouldEqual, 1)
			So(h1.bodies, ShouldResemble, []string{"payload"})
		})

		Convey("Both failing surfaces the HTTP/1.1 error", func() {
			h1.err = errors.New("connection reset")
			_, err := tr.RoundTrip(requestWith(DefaultConfig(), http.MethodGet, "https://example.com", ""))
			So(err, ShouldEqual, h1.err)
		})
	})

	Convey("Given an HTTP/2 transport failing after the request was sent", t, func() {
		h2 := &stubTransport{err: errors.New("stream error: INTERNAL_ERROR")}
		h1 := &stubTransport{}
		tr := &fingerprintTransport{h2: h2, h1: h1}

		_, err := tr.RoundTrip(requestWith(DefaultConfig(), http.MethodPost, "https://example.com", "payload"))

		Convey("The request is not sent a second time", func() {
			So(err, ShouldEqual, h2.err)
			So(h1.calls, ShouldEqual, 0)
		})
	})

	Convey("Given a working HTTP/2 transport", t, func() {
		h2, h1 := &stubTransport{}, &stubTransport{}
		tr := &fingerprintTransport{h2: h2, h1: h1}

		_, err := tr.RoundTrip(requestWith(DefaultConfig(), http.MethodGet, "https://example.com", ""))

		Convey("HTTP/1.1 is never tried", func() {
			So(err, ShouldBeNil)
			So(h1.calls, ShouldEqual, 0)
		})
	})
}

func TestUserAgentTransport(t *testing.T) {
	Convey("Given a pool of one agent", t, func() {
		next := &stubTransport{}
		tr := &userAgentTransport{next: next}

		cfg := DefaultConfig()
		cfg.UserAgents = UserAgentPool{"agent-x"}
		req := requestWith(cfg, http.MethodGet, "https://example.com", "")
		req.Header.Set("User-Agent", "original")

		_, err := tr.RoundTrip(req)

		Convey("The sent request carries the rolled agent", func() {
			So(err, ShouldBeNil)
			So(next.agents, ShouldResemble, []string{"agent-x"})
		})

		Convey("The caller's request is left untouched", func() {
			So(req.Header.Get("User-Agent"), ShouldEqual, "original")
		})
	})

	Convey("Without a snapshot the default pool is used", t, func() {
		next := &stubTransport{}
		tr := &userAgentTransport{next: next}
		req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)

		_, _ = tr.RoundTrip(req)
		So(DefaultUserAgents, ShouldContain, next.agents[0])
	})
}
