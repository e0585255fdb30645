// Package config registers every setting with viper: defaults, environment
// bindings and the TOML file in the configuration directory.
package config

import (
	"errors"
	"strings"

	"github.com/shopfetch/shopfetch/constant"
	"github.com/shopfetch/shopfetch/filesystem"
	"github.com/shopfetch/shopfetch/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, binds SHOPFETCH_* environment variables and reads
// the config file if one exists.
func Setup() error {
	viper.SetConfigName(constant.Shopfetch)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Shopfetch)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}
