package network

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// RequestOption adjusts a single request.
type RequestOption func(*request)

type request struct {
	headers     map[string]string
	query       url.Values
	contentType string
}

func newRequest(opts []RequestOption) *request {
	r := &request{headers: map[string]string{}, query: url.Values{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithHeader sets one header on this request only.
func WithHeader(name, value string) RequestOption {
	return func(r *request) {
		r.headers[http.CanonicalHeaderKey(name)] = value
	}
}

// WithHeaders sets several headers on this request only.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *request) {
		for k, v := range headers {
			r.headers[http.CanonicalHeaderKey(k)] = v
		}
	}
}

// WithQuery adds a query parameter to the request URL.
func WithQuery(name, value string) RequestOption {
	return func(r *request) {
		r.query.Add(name, value)
	}
}

// WithContentType overrides the Content-Type derived from the body.
func WithContentType(contentType string) RequestOption {
	return func(r *request) {
		r.contentType = contentType
	}
}

// encodeBody turns a request body into replayable bytes and its default
// content type. Raw bodies are sent as is; other values are JSON-encoded.
func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return b, "application/octet-stream", nil
	case string:
		return []byte(b), "text/plain; charset=utf-8", nil
	case url.Values:
		return []byte(b.Encode()), "application/x-www-form-urlencoded", nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, "", fmt.Errorf("read request body: %w", err)
		}
		return data, "application/octet-stream", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return data, "application/json", nil
	}
}

// resolveURL validates rawURL and appends the request's query parameters.
func resolveURL(rawURL string, query url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
