package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/constant"
	"github.com/shopfetch/shopfetch/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		for name, fn := range map[string]func() string{
			"Config": Config,
			"Cache":  Cache,
			"Logs":   Logs,
			"Temp":   Temp,
		} {
			Convey(name+"()", func() {
				path := fn()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}

		Convey("ConfigFile() lives in Config()", func() {
			So(filepath.Dir(ConfigFile()), ShouldEqual, Config())
			So(filepath.Base(ConfigFile()), ShouldEqual, constant.Shopfetch+".toml")
		})
	})
}

func TestConfigOverride(t *testing.T) {
	Convey("Given SHOPFETCH_CONFIG_PATH is set", t, func() {
		custom := filepath.Join(os.TempDir(), "shopfetch-test-config")
		t.Setenv(EnvConfigPath, custom)

		Convey("Config() returns the override", func() {
			So(Config(), ShouldEqual, custom)
			So(lo.Must(filesystem.API().IsDir(custom)), ShouldBeTrue)
		})
	})
}
