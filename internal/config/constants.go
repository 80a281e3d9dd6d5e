package config

const (
	// ConfigPathEnvVar names the environment variable consulted by GetConfigPath.
	ConfigPathEnvVar = "PURGECONF_CONFIG_PATH"

	// Extractor Defaults
	DefaultSplitVariants  = true
	DefaultMatchTimeoutMs = 2000

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Cache Defaults
	DefaultCacheEnabled       = false
	DefaultCacheMemoryEntries = 4096
	DefaultCacheSQLitePath    = ".purgeconf/cache.db"

	// Harvest Defaults
	DefaultHarvestWorkers       = 8
	DefaultHarvestMaxFileSizeMB = 10
	DefaultHarvestProjectRoot   = "."
)

// DefaultContent lists the files scanned for used tokens when no
// configuration file overrides it.
func DefaultContent() []string {
	return []string{
		"./**/*.html",
		"./**/*.php",
		"./src/**/*.js",
	}
}
