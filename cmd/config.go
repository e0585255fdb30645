package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/color"
	"github.com/shopfetch/shopfetch/config"
	"github.com/shopfetch/shopfetch/filesystem"
	"github.com/shopfetch/shopfetch/icon"
	"github.com/shopfetch/shopfetch/style"
	"github.com/shopfetch/shopfetch/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// closestKey returns the registered key nearest to k by edit distance.
func closestKey(k string) string {
	return lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		da, db := levenshtein.Distance(k, a), levenshtein.Distance(k, b)
		if da == db {
			return a < b
		}
		return da < db
	})
}

func errUnknownKey(k string) error {
	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(k),
		style.Fg(color.Yellow)(closestKey(k)),
	)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

// keyArg picks the key from the first argument or the --key flag.
func keyArg(cmd *cobra.Command, args []string) (string, error) {
	k := lo.Must(cmd.Flags().GetString("key"))
	if len(args) > 0 {
		k = args[0]
	}

	if k == "" {
		return "", errors.New("key is required as an argument or --key flag")
	}

	if _, ok := config.Default[k]; !ok {
		return "", errUnknownKey(k)
	}

	return k, nil
}

// parseValue converts raw values to the type of the key's default.
func parseValue(k string, raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, errors.New("value is required as an argument or --value flag")
	}

	switch config.Default[k].Value.(type) {
	case string:
		return raw[0], nil
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value for %s: %q", k, raw[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value for %s: %q", k, raw[0])
		}
		return b, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported type for %s", k)
	}
}

func writeConfig() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Show only these keys")
	configInfoCmd.Flags().StringP("filter", "f", "", "Show only keys fuzzy-matching this text")
	configInfoCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	configInfoCmd.MarkFlagsMutuallyExclusive("key", "filter")
	lo.Must0(configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys))
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show descriptions, values and defaults of config keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			filter = lo.Must(cmd.Flags().GetString("filter"))
			asJSON = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		switch {
		case len(keys) > 0:
			fields = fields[:0]
			for _, k := range keys {
				field, ok := config.Default[k]
				if !ok {
					return errUnknownKey(k)
				}
				fields = append(fields, field)
			}
		case filter != "":
			fields = lo.Filter(fields, func(f config.Field, _ int) bool {
				return fuzzy.MatchFold(filter, f.Key)
			})
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(lo.ToSlicePtr(fields))
		}

		for i, field := range fields {
			fmt.Fprint(cmd.OutOrStdout(), field.Pretty())
			if i < len(fields)-1 {
				fmt.Fprint(cmd.OutOrStdout(), "\n\n")
			}
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "Key to set")
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "Value to set")
	lo.Must0(configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys))
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Set a config value and write it to the config file",
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := keyArg(cmd, args)
		if err != nil {
			return err
		}

		raw := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			raw = args[1:]
		}

		v, err := parseValue(k, raw)
		if err != nil {
			return err
		}

		viper.Set(k, v)
		if err := writeConfig(); err != nil {
			return err
		}

		success(cmd, "set %s to %s", style.Fg(color.Purple)(k), style.Fg(color.Yellow)(fmt.Sprint(v)))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "Key to print")
	lo.Must0(configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys))
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a config key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := keyArg(cmd, args)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), viper.Get(k))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := where.ConfigFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !os.IsNotExist(err) {
				return err
			}
		}

		if err := viper.SafeWriteConfigAs(path); err != nil {
			return err
		}

		success(cmd, "wrote config to %s", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
	configDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete the config file",
	Aliases: []string{"remove"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := where.ConfigFile()

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			err := survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Delete %s?", path),
				Default: false,
			}, &confirmed)
			if err != nil {
				return err
			}

			if !confirmed {
				return nil
			}
		}

		if err := filesystem.API().Remove(path); err != nil {
			return err
		}

		success(cmd, "deleted config")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().StringP("key", "k", "", "Key to reset")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	lo.Must0(configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys))
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore config keys to their default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for k, field := range config.Default {
				viper.Set(k, field.Value)
			}

			if err := writeConfig(); err != nil {
				return err
			}

			success(cmd, "reset all config values")
			return nil
		}

		if !cmd.Flags().Changed("key") {
			return errors.New("either --key or --all must be set")
		}

		k, err := keyArg(cmd, nil)
		if err != nil {
			return err
		}

		viper.Set(k, config.Default[k].Value)
		if err := writeConfig(); err != nil {
			return err
		}

		success(cmd, "reset %s to default value %s",
			style.Fg(color.Purple)(k),
			style.Fg(color.Yellow)(fmt.Sprint(config.Default[k].Value)),
		)
		return nil
	},
}
