// Package shop fetches product detail pages through the resilient client.
package shop

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopfetch/shopfetch/log"
	"github.com/shopfetch/shopfetch/network"
)

// Fetcher is the part of *network.Client product fetching needs.
type Fetcher interface {
	Get(ctx context.Context, url string, opts ...network.RequestOption) network.Response[[]byte]
}

var _ Fetcher = (*network.Client)(nil)

// FetchError carries a failed envelope's message and last status.
type FetchError struct {
	URL     string
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch product %s (status %d): %s", e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("fetch product %s: %s", e.URL, e.Message)
}

// ValidateProductURL accepts absolute http and https URLs only.
func ValidateProductURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid product url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid product url %q: scheme must be http or https", raw)
	}

	if u.Host == "" {
		return fmt.Errorf("invalid product url %q: missing host", raw)
	}

	return nil
}

// FetchProduct returns the product page as text or a *FetchError.
func FetchProduct(ctx context.Context, f Fetcher, productURL string) (string, error) {
	resp, err := Fetch(ctx, f, productURL)
	if err != nil {
		return "", err
	}
	return resp.Data, nil
}

// Fetch returns the full text envelope, with a *FetchError when it failed.
// A nil f uses the shared network.Default client.
func Fetch(ctx context.Context, f Fetcher, productURL string) (network.Response[string], error) {
	if err := ValidateProductURL(productURL); err != nil {
		return network.Response[string]{Error: err.Error()}, err
	}

	if f == nil {
		f = network.Default()
	}

	resp := network.Text(f.Get(ctx, productURL))
	if !resp.Success {
		return resp, &FetchError{URL: productURL, Status: resp.Status, Message: resp.Error}
	}

	log.WithFields(log.Fields{"url": productURL, "bytes": len(resp.Data)}).Info("product page fetched")
	return resp, nil
}

// FetchProductBestEffort never fails: a failed fetch is logged and yields "".
// It exists for callers that relied on failures being silent.
func FetchProductBestEffort(ctx context.Context, f Fetcher, productURL string) string {
	page, err := FetchProduct(ctx, f, productURL)
	if err != nil {
		log.Warn(err)
		return ""
	}
	return page
}
