package config

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/aleister1102/purgeconf/internal/common"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GlobalConfig is the full on-disk configuration of the tool.
type GlobalConfig struct {
	PurgeConfig   PurgeConfig   `json:"purge" yaml:"purge"`
	CacheConfig   CacheConfig   `json:"cache,omitempty" yaml:"cache,omitempty"`
	HarvestConfig HarvestConfig `json:"harvest,omitempty" yaml:"harvest,omitempty"`
	LogConfig     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`
}

// NewDefaultGlobalConfig returns a configuration populated with defaults.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		PurgeConfig:   NewDefaultPurgeConfig(),
		CacheConfig:   NewDefaultCacheConfig(),
		HarvestConfig: NewDefaultHarvestConfig(),
		LogConfig:     NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath and layers the file
// over the defaults. YAML is used for .yaml and .yml files, JSON otherwise.
// When no file is found the defaults are returned.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	fileManager := common.NewFileManager(logger)
	if providedPath != "" && !fileManager.FileExists(providedPath) {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		logger.Debug().Msg("No config file found, using defaults")
		return cfg, nil
	}

	data, err := loadConfigFileContent(fileManager, filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	logger.Debug().Str("path", filePath).Msg("Loaded config file")
	return cfg, nil
}

// loadConfigFileContent reads the config file using FileManager
func loadConfigFileContent(fileManager *common.FileManager, filePath string) ([]byte, error) {
	opts := common.DefaultFileReadOptions()
	opts.MaxSize = 1024 * 1024 // 1MB max config file size

	return fileManager.ReadFile(context.Background(), filePath, opts)
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// SaveGlobalConfig writes cfg to filePath as YAML or JSON depending on the
// extension.
func SaveGlobalConfig(cfg *GlobalConfig, filePath string, logger zerolog.Logger) error {
	if cfg == nil {
		return common.NewValidationError("config", cfg, "config cannot be nil")
	}
	if filePath == "" {
		return common.NewValidationError("path", filePath, "path cannot be empty")
	}

	var data []byte
	var err error

	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return common.NewError("failed to marshal config to YAML: %w", err)
		}
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return common.NewError("failed to marshal config to JSON: %w", err)
		}
	}

	fileManager := common.NewFileManager(logger)
	if err := fileManager.WriteFile(filePath, data, common.DefaultFileWriteOptions()); err != nil {
		return common.WrapError(err, "failed to write config file")
	}

	logger.Info().
		Str("path", filePath).
		Str("format", ext).
		Msg("Saved config file")
	return nil
}
