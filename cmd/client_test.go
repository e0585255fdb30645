package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/shopfetch/shopfetch/key"
	"github.com/shopfetch/shopfetch/network"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestParseHeaders(t *testing.T) {
	Convey("parseHeaders", t, func() {
		Convey("Splits on the first colon and trims", func() {
			headers, err := parseHeaders([]string{"Cookie: a=1; b=2", "Referer:https://example.com/x"})
			So(err, ShouldBeNil)
			So(headers, ShouldResemble, map[string]string{
				"Cookie":  "a=1; b=2",
				"Referer": "https://example.com/x",
			})
		})

		Convey("Rejects lines without a name", func() {
			_, err := parseHeaders([]string{"no separator"})
			So(err, ShouldNotBeNil)

			_, err = parseHeaders([]string{": value"})
			So(err, ShouldNotBeNil)

			_, err = parseHeaders([]string{"Referer https://www.1688.com"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestClientOptions(t *testing.T) {
	Convey("Given network settings in viper", t, func() {
		quiet()
		viper.Set(key.NetworkTimeout, 2500)
		viper.Set(key.NetworkRetryTimes, 4)
		viper.Set(key.NetworkRetryDelay, 20)
		viper.Set(key.NetworkHeaders, []string{"X-Shop: 1688"})
		viper.Set(key.NetworkUserAgents, []string{"agent/1"})
		defer func() {
			viper.Set(key.NetworkUserAgents, []string{})
			quiet()
		}()

		Convey("They become client options", func() {
			opts, err := clientOptions()
			So(err, ShouldBeNil)
			So(opts.Timeout.MustGet(), ShouldEqual, 2500*time.Millisecond)
			So(opts.RetryTimes.MustGet(), ShouldEqual, 4)
			So(opts.RetryDelay.MustGet(), ShouldEqual, 20*time.Millisecond)
			So(opts.Headers["X-Shop"], ShouldEqual, "1688")
			So(opts.UserAgents.MustGet(), ShouldResemble, []string{"agent/1"})
		})

		Convey("A client is built from them", func() {
			client, err := newClient()
			So(err, ShouldBeNil)
			cfg := client.Config()
			So(cfg.Timeout, ShouldEqual, 2500*time.Millisecond)
			So(cfg.Proxy, ShouldBeNil)
		})

		Convey("The environment variable keeps values with spaces and URLs intact", func() {
			t.Setenv("SHOPFETCH_NETWORK_HEADERS", "Referer: https://www.1688.com\nCookie: a=1; b=2\n")

			opts, err := clientOptions()
			So(err, ShouldBeNil)
			So(opts.Headers, ShouldResemble, map[string]string{
				"Referer": "https://www.1688.com",
				"Cookie":  "a=1; b=2",
			})
		})

		Convey("A malformed proxy is a config error", func() {
			viper.Set(key.NetworkProxy, "nope")
			_, err := newClient()
			So(errors.Is(err, network.ErrInvalidProxy), ShouldBeTrue)
		})
	})
}
