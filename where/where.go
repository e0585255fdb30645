// Package where resolves the per-user directories the application reads and writes.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/constant"
	"github.com/shopfetch/shopfetch/filesystem"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "SHOPFETCH_CONFIG_PATH"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, honouring SHOPFETCH_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok && custom != "" {
		return mkdir(custom)
	}

	return mkdir(filepath.Join(lo.Must(os.UserConfigDir()), constant.Shopfetch))
}

// ConfigFile is the path of the TOML configuration file inside Config.
func ConfigFile() string {
	return filepath.Join(Config(), constant.Shopfetch+".toml")
}

// Cache returns the cache directory. Falls back to ./cache when the
// platform cache dir cannot be determined.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return mkdir(filepath.Join(base, constant.Shopfetch))
}

// Logs returns the directory daily log files are written to.
func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Temp returns a scratch directory for transient files.
func Temp() string {
	return mkdir(filepath.Join(os.TempDir(), constant.Shopfetch))
}
