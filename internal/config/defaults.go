package config

// Default values for configuration options.
const (
	// DefaultOutputType is the device used when none is configured.
	DefaultOutputType = "png"
	// DefaultOrientation is the page orientation used when none is configured.
	DefaultOrientation = "portrait"
	// DefaultLogFormat is the slog handler used for driver messages.
	DefaultLogFormat = "text"
	// DefaultLogoText is the close time mark.
	DefaultLogoText = "gkscairo"
	// DefaultCPULimit is the Lua instruction limit for one script run.
	DefaultCPULimit = 50_000_000
	// DefaultMemoryLimit is the Lua memory limit in bytes.
	DefaultMemoryLimit = 64 * 1024 * 1024
)

// DefaultConfig returns a Config with default values. The log mask is
// left to XGKS_LOG.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Type:        DefaultOutputType,
			Orientation: DefaultOrientation,
		},
		Logging: LoggingConfig{
			Mask:   -1,
			Format: DefaultLogFormat,
		},
		ASF: ASFConfig{
			LineType:   "individual",
			LineWidth:  "individual",
			LineColour: "individual",
		},
		Logo: LogoConfig{
			Enabled: true,
			Text:    DefaultLogoText,
		},
		Lua: LuaConfig{
			CPULimit:    DefaultCPULimit,
			MemoryLimit: DefaultMemoryLimit,
		},
	}
}
