package cli

// Command descriptions
const (
	MsgRootShort = "Compose bundler configuration for CSS handling and static copying"
	MsgRootLong  = `bundlechain builds the bundler configuration of a project from its
bundlechain config file. Plugins compose a chain of rules and loader
stages, the chain is materialized, and post-processing plugins prune
what the build does not need (such as copy steps whose sources are missing).`

	MsgInspectShort = "Print the bundler configuration for a target"
	MsgInspectLong  = `Inspect loads the project configuration, runs every plugin for the given
target and mode, and prints the resulting bundler configuration.

Stages of each rule are listed in insertion order. The bundler runs them
from last to first.`

	MsgPluginsShort    = "List registered plugins in default hook order"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
)

// Flag descriptions
const (
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagLogFile = "Log file path (defaults to the XDG state directory, - disables it)"
	MsgFlagRoot    = "Project root (defaults to the current directory)"
	MsgFlagConfig  = "Config file, relative to the project root (overrides discovery)"
	MsgFlagTarget  = "Build target: web, node, web-worker or service-worker"
	MsgFlagMode    = "Build mode: production or development"
	MsgFlagFormat  = "Output format: auto, term, text, json, yaml or toml"
	MsgFlagPlugins = "Plugins to run, in hook order (defaults to every builtin plugin)"
)

// Error messages
const (
	MsgErrUnknownMode = "unknown mode %q, expected production or development"
	MsgErrGetwd       = "failed to determine working directory: %w"
)
