package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. the path passed in (from the --config flag)
// 2. PURGECONF_CONFIG_PATH environment variable
// 3. purgeconf.yaml, purgeconf.yml, purgeconf.json in the current working directory
// An empty string means no config file was found.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" && fileExists(configFilePathFlag) {
		return configFilePathFlag
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" && fileExists(envPath) {
		return envPath
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for _, name := range []string{"purgeconf.yaml", "purgeconf.yml", "purgeconf.json"} {
		path := filepath.Join(cwd, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// Helper function to check if a file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
