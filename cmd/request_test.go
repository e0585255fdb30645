package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type echo struct {
	Method      string `json:"method"`
	Body        string `json:"body"`
	ContentType string `json:"content_type"`
	Cookie      string `json:"cookie"`
}

func TestRequestCommand(t *testing.T) {
	Convey("Given an echo server", t, func() {
		quiet()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			_ = json.NewEncoder(w).Encode(echo{
				Method:      r.Method,
				Body:        string(body),
				ContentType: r.Header.Get("Content-Type"),
				Cookie:      r.Header.Get("Cookie"),
			})
		}))
		defer srv.Close()

		Convey("A lower-case method is accepted", func() {
			out, err := execute("request", "get", srv.URL)
			So(err, ShouldBeNil)

			var got echo
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
			So(got.Method, ShouldEqual, http.MethodGet)
		})

		Convey("JSON data is sent as application/json with headers", func() {
			out, err := execute("request", "POST", srv.URL, "-d", `{"id":1}`, "-H", "Cookie: session=abc")
			So(err, ShouldBeNil)

			var got echo
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
			So(got.Method, ShouldEqual, http.MethodPost)
			So(got.Body, ShouldEqual, `{"id":1}`)
			So(got.ContentType, ShouldEqual, "application/json")
			So(got.Cookie, ShouldEqual, "session=abc")
		})

		Convey("Plain data keeps the text content type", func() {
			out, err := execute("request", "PUT", srv.URL, "-d", "hello")
			So(err, ShouldBeNil)

			var got echo
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
			So(got.Body, ShouldEqual, "hello")
			So(got.ContentType, ShouldStartWith, "text/plain")
		})

		Convey("Unsupported methods are rejected", func() {
			_, err := execute("request", "PATCH", srv.URL)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unsupported method")
		})

		Convey("Malformed headers are rejected", func() {
			_, err := execute("request", "GET", srv.URL, "-H", "broken")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRequestSchemaCommand(t *testing.T) {
	Convey("request schema describes the envelope", t, func() {
		out, err := execute("request", "schema")
		So(err, ShouldBeNil)

		var schema map[string]any
		So(json.Unmarshal([]byte(out), &schema), ShouldBeNil)

		properties, ok := schema["properties"].(map[string]any)
		So(ok, ShouldBeTrue)
		So(properties, ShouldContainKey, "success")
		So(properties, ShouldContainKey, "data")
		So(properties, ShouldContainKey, "error")
		So(properties, ShouldContainKey, "status")
	})
}
