// Package version discovers newer releases and tells the user about them.
package version

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/shopfetch/shopfetch/constant"
	"github.com/shopfetch/shopfetch/filesystem"
	"github.com/shopfetch/shopfetch/network"
	"github.com/shopfetch/shopfetch/where"
)

var releaseURL = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

var versionCacher = sync.OnceValue(func() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   48 * time.Hour,
		FileSystem: &filesystem.GacheFs{},
	})
})

// releaseClient skips pacing: the release API is not a shop.
var releaseClient = sync.OnceValue(func() *network.Client {
	return network.MustNew(network.Options{
		Timeout:    mo.Some(5 * time.Second),
		RetryTimes: mo.Some(1),
		RetryDelay: mo.Some(500 * time.Millisecond),
		PacingMin:  mo.Some(time.Duration(0)),
		PacingMax:  mo.Some(time.Duration(0)),
	})
})

type release struct {
	TagName string `json:"tag_name"`
}

// Latest returns the newest released version, cached for two days.
func Latest(ctx context.Context) (string, error) {
	ver, expired, err := versionCacher().Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	resp := network.Do[release](ctx, releaseClient(), http.MethodGet, releaseURL, nil,
		network.WithHeader("Accept", "application/vnd.github+json"),
	)
	if !resp.Success {
		return "", errors.New(resp.Error)
	}

	if resp.Data.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(resp.Data.TagName, "v")
	_ = versionCacher().Set(ver)
	return ver, nil
}
