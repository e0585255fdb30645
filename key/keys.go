// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 15

// Network Client - these keys configure the resilient HTTP client used for every outbound fetch.
const (
	NetworkTimeout        = "network.timeout"
	NetworkProxy          = "network.proxy"
	NetworkHeaders        = "network.headers"
	NetworkRetryTimes     = "network.retry_times"
	NetworkRetryDelay     = "network.retry_delay"
	NetworkPacingMin      = "network.pacing_min"
	NetworkPacingMax      = "network.pacing_max"
	NetworkUserAgents     = "network.user_agents"
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
