package cmd

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/config"
	"github.com/shopfetch/shopfetch/constant"
	"github.com/shopfetch/shopfetch/filesystem"
	"github.com/shopfetch/shopfetch/key"
	"github.com/shopfetch/shopfetch/log"
	"github.com/shopfetch/shopfetch/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

// quiet makes requests fast: no pacing, no retries.
func quiet() {
	viper.Set(key.NetworkPacingMin, 0)
	viper.Set(key.NetworkPacingMax, 0)
	viper.Set(key.NetworkRetryTimes, 0)
	viper.Set(key.NetworkRetryDelay, 0)
	viper.Set(key.NetworkTimeout, 5000)
	viper.Set(key.NetworkProxy, "")
	viper.Set(key.NetworkHeaders, []string{})
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}

	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns its stdout.
func execute(args ...string) (string, error) {
	var out bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHandleErr(t *testing.T) {
	Convey("Given a recorded exit and stderr", t, func() {
		var (
			code = -1
			buf  bytes.Buffer
		)
		origExit, origStderr := exit, stderr
		exit = func(c int) { code = c }
		stderr = &buf
		defer func() { exit, stderr = origExit, origStderr }()

		Convey("A nil error does nothing", func() {
			handleErr(nil)
			So(code, ShouldEqual, -1)
			So(buf.Len(), ShouldEqual, 0)
		})

		Convey("An error is printed and exits with 1", func() {
			handleErr(errors.New("boom"))
			So(code, ShouldEqual, 1)
			So(buf.String(), ShouldContainSubstring, "boom")
			So(buf.String(), ShouldNotContainSubstring, "See logs")
		})

		Convey("With logs enabled the logs dir is pointed out", func() {
			viper.Set(key.LogsWrite, true)
			So(log.Setup(), ShouldBeNil)
			defer func() {
				viper.Set(key.LogsWrite, false)
				_ = log.Setup()
			}()

			handleErr(errors.New("boom"))
			So(buf.String(), ShouldContainSubstring, "See logs in "+where.Logs())
		})
	})
}

func TestVersionCommand(t *testing.T) {
	Convey("version --short prints the bare version", t, func() {
		out, err := execute("version", "--short")
		So(err, ShouldBeNil)
		So(out, ShouldEqual, constant.Version+"\n")
	})

	Convey("version prints build details", t, func() {
		out, err := execute("version")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, constant.Version)
		So(out, ShouldContainSubstring, "Platform")
	})
}

func TestPingCommand(t *testing.T) {
	Convey("ping replies once the delay has passed", t, func() {
		out, err := execute("ping", "--delay", "0s")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "pong")

		out, err = execute("ping", "hello", "--delay", "1ms")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "hello")
	})

	Convey("ping rejects a negative delay", t, func() {
		_, err := execute("ping", "--delay", "-1s")
		So(err, ShouldNotBeNil)
	})
}

func TestEnvCommand(t *testing.T) {
	Convey("envNames covers every config key and the config path", t, func() {
		names := envNames()
		So(names, ShouldContain, "SHOPFETCH_NETWORK_PROXY")
		So(names, ShouldContain, "SHOPFETCH_NETWORK_RETRY_TIMES")
		So(names, ShouldContain, "SHOPFETCH_CONFIG_PATH")
		So(len(names), ShouldEqual, key.DefinedFieldsCount+1)
	})

	Convey("env --set-only shows only defined variables", t, func() {
		t.Setenv("SHOPFETCH_NETWORK_PROXY", "127.0.0.1:8080")

		out, err := execute("env", "--set-only")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "SHOPFETCH_NETWORK_PROXY")
		So(out, ShouldContainSubstring, "127.0.0.1:8080")
		So(out, ShouldNotContainSubstring, "SHOPFETCH_LOGS_LEVEL")
	})
}

func TestWhereCommand(t *testing.T) {
	Convey("where --config prints only the config dir", t, func() {
		t.Setenv("SHOPFETCH_CONFIG_PATH", "/tmp/shopfetch-where")

		out, err := execute("where", "--config")
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "/tmp/shopfetch-where\n")
	})

	Convey("where lists the visible paths", t, func() {
		out, err := execute("where")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "--config")
		So(out, ShouldContainSubstring, "--logs")
		So(out, ShouldNotContainSubstring, "--temp")
	})
}
