package log

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopfetch/shopfetch/filesystem"
	"github.com/shopfetch/shopfetch/key"
	"github.com/shopfetch/shopfetch/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logs are disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup succeeds and nothing is written", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
			Info("dropped")
		})
	})

	Convey("Given logs are enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		defer viper.Set(key.LogsWrite, false)

		Convey("Setup opens a log file", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)
		})

		Convey("Setting up twice appends to the same daily file", func() {
			So(Setup(), ShouldBeNil)
			Info("first run")
			So(Setup(), ShouldBeNil)
			Info("second run")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "first run")
			So(string(data), ShouldContainSubstring, "second run")
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given a buffer as output", t, func() {
		var buf bytes.Buffer

		Convey("JSON format emits structured fields", func() {
			viper.Set(key.LogsJson, true)
			viper.Set(key.LogsLevel, "debug")
			defer viper.Set(key.LogsJson, false)

			So(configure(&buf), ShouldBeNil)
			WithFields(Fields{"attempt": 2}).Debug("retrying")

			So(buf.String(), ShouldContainSubstring, `"attempt":2`)
			So(buf.String(), ShouldContainSubstring, `"msg":"retrying"`)
		})

		Convey("Level filters lower severities", func() {
			viper.Set(key.LogsLevel, "warn")

			So(configure(&buf), ShouldBeNil)
			Debug("hidden")
			Warn("shown")

			So(buf.String(), ShouldNotContainSubstring, "hidden")
			So(buf.String(), ShouldContainSubstring, "shown")
		})

		Convey("An invalid level falls back to info", func() {
			viper.Set(key.LogsLevel, "loud")

			So(configure(&buf), ShouldBeNil)
			Info("visible")
			Debug("invisible")

			So(buf.String(), ShouldContainSubstring, "visible")
			So(buf.String(), ShouldNotContainSubstring, "invisible")
		})
	})
}
