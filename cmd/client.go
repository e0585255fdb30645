package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/shopfetch/shopfetch/config"
	"github.com/shopfetch/shopfetch/key"
	"github.com/shopfetch/shopfetch/network"
	"github.com/spf13/viper"
)

func millis(key string) time.Duration {
	return time.Duration(viper.GetInt(key)) * time.Millisecond
}

// parseHeaders turns "Name: value" lines into a header map.
func parseHeaders(lines []string) (map[string]string, error) {
	headers := make(map[string]string, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("invalid header %q: expected \"Name: value\"", line)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

// headerLines reads network.headers. Its environment variable holds one
// header per line, since viper would split a string value on any space.
func headerLines() []string {
	field := config.Default[key.NetworkHeaders]
	if raw, ok := os.LookupEnv(field.Env()); ok && strings.TrimSpace(raw) != "" {
		return lo.FilterMap(strings.Split(raw, "\n"), func(line string, _ int) (string, bool) {
			line = strings.TrimSpace(line)
			return line, line != ""
		})
	}

	return viper.GetStringSlice(key.NetworkHeaders)
}

// clientOptions reads the network.* keys.
func clientOptions() (network.Options, error) {
	headers, err := parseHeaders(headerLines())
	if err != nil {
		return network.Options{}, err
	}

	opts := network.Options{
		Timeout:     mo.Some(millis(key.NetworkTimeout)),
		Proxy:       mo.Some(strings.TrimSpace(viper.GetString(key.NetworkProxy))),
		Headers:     headers,
		RetryTimes:  mo.Some(viper.GetInt(key.NetworkRetryTimes)),
		RetryDelay:  mo.Some(millis(key.NetworkRetryDelay)),
		PacingMin:   mo.Some(millis(key.NetworkPacingMin)),
		PacingMax:   mo.Some(millis(key.NetworkPacingMax)),
		Fingerprint: mo.Some(viper.GetBool(key.NetworkTLSFingerprint)),
	}

	if agents := viper.GetStringSlice(key.NetworkUserAgents); len(agents) > 0 {
		opts.UserAgents = mo.Some(agents)
	}

	return opts, nil
}

func newClient() (*network.Client, error) {
	opts, err := clientOptions()
	if err != nil {
		return nil, err
	}
	return network.New(opts)
}
