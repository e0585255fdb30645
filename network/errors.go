package network

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrInvalidProxy marks a proxy string that is not host:port.
	ErrInvalidProxy = errors.New("proxy must be host:port")
	// ErrInvalidValue marks an out-of-range configuration value.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidURL marks a request URL that is not absolute http(s).
	ErrInvalidURL = errors.New("url must be absolute http or https")
	// ErrStatus marks a response whose status is outside 2xx.
	ErrStatus = errors.New("unexpected status")
)

// ConfigError reports a configuration field rejected by New or UpdateConfig.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError reports a failed send. Status is 0 when no response arrived.
type TransportError struct {
	Method string
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if errors.Is(e.Err, ErrStatus) {
		return fmt.Sprintf("%s %s: request failed with status code %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// statusOf digs the last known HTTP status out of err.
func statusOf(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Status
	}
	return 0
}

// unwrapURLError drops the *url.Error wrapper http.Client adds, whose
// method and URL TransportError already carries.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
