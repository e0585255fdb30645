package network

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Response is the envelope every request returns. Exactly one of Data and
// Error is meaningful, selected by Success.
type Response[T any] struct {
	Success bool              `json:"success" jsonschema:"description=Whether the request eventually succeeded."`
	Data    T                 `json:"data,omitempty" jsonschema:"description=Response body. Present only on success."`
	Headers map[string]string `json:"headers,omitempty" jsonschema:"description=Response headers with lower-cased names."`
	Error   string            `json:"error,omitempty" jsonschema:"description=Failure message. Present only on failure."`
	Status  int               `json:"status,omitempty" jsonschema:"description=HTTP status of the last response received, if any."`
}

// wireResponse is the serialized envelope. Data is a pointer so an empty
// body still appears on success and never on failure.
type wireResponse[T any] struct {
	Success bool              `json:"success"`
	Data    *T                `json:"data,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Error   string            `json:"error,omitempty"`
	Status  int               `json:"status,omitempty"`
}

func (r Response[T]) MarshalJSON() ([]byte, error) {
	w := wireResponse[T]{Success: r.Success, Headers: r.Headers, Error: r.Error, Status: r.Status}
	if r.Success {
		w.Data = &r.Data
	}
	return json.Marshal(w)
}

func succeed[T any](data T, headers map[string]string, status int) Response[T] {
	return Response[T]{Success: true, Data: data, Headers: headers, Status: status}
}

func fail[T any](err error) Response[T] {
	return Response[T]{Success: false, Error: err.Error(), Status: statusOf(err)}
}

// Map converts the payload of a successful envelope. Failures pass through.
func Map[T, U any](r Response[T], fn func(T) U) Response[U] {
	out := Response[U]{Success: r.Success, Headers: r.Headers, Error: r.Error, Status: r.Status}
	if r.Success {
		out.Data = fn(r.Data)
	}
	return out
}

// Text converts a raw body envelope into a string one.
func Text(r Response[[]byte]) Response[string] {
	return Map(r, func(b []byte) string { return string(b) })
}

// decode converts a body into T: []byte is passed through, string is
// converted, anything else is JSON-decoded.
func decode[T any](body []byte) (T, error) {
	var out T

	switch p := any(&out).(type) {
	case *[]byte:
		*p = body
	case *string:
		*p = string(body)
	default:
		if len(body) == 0 {
			return out, nil
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return out, fmt.Errorf("decode response body: %w", err)
		}
	}

	return out, nil
}

func flattenHeader(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}

	out := make(map[string]string, len(h))
	for k, vs := range h {
		out[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return out
}
