// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Shopfetch is the canonical application identifier used for filesystem paths and CLI branding.
	Shopfetch = "shopfetch"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// Repository is the upstream repository slug used for release discovery.
	Repository = "shopfetch/shopfetch"
)

// Build metadata, injected at link time via -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
