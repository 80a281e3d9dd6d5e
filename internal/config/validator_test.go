package config

import (
	"testing"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(cfg *GlobalConfig)
		errContains string
	}{
		{
			name:   "defaults",
			mutate: func(cfg *GlobalConfig) {},
		},
		{
			name: "lookbehind pattern",
			mutate: func(cfg *GlobalConfig) {
				cfg.PurgeConfig.DefaultExtractor.Pattern = `[\w-/:]+(?<!:)`
			},
		},
		{
			name: "empty content list",
			mutate: func(cfg *GlobalConfig) {
				cfg.PurgeConfig.Content = nil
			},
			errContains: "section 'PurgeConfig', field 'Content': rule 'required'",
		},
		{
			name: "empty glob",
			mutate: func(cfg *GlobalConfig) {
				cfg.PurgeConfig.Content = []string{"./**/*.html", ""}
			},
			errContains: "field 'Content[1]': rule 'required'",
		},
		{
			name: "malformed glob",
			mutate: func(cfg *GlobalConfig) {
				cfg.PurgeConfig.Content = []string{"./src/[a-"}
			},
			errContains: "rule 'glob'",
		},
		{
			name: "bad default pattern",
			mutate: func(cfg *GlobalConfig) {
				cfg.PurgeConfig.DefaultExtractor.Pattern = `(unclosed`
			},
			errContains: "rule 'ecmaregex'",
		},
		{
			name: "override without extensions",
			mutate: func(cfg *GlobalConfig) {
				cfg.PurgeConfig.Extractors = []ExtensionExtractorConfig{{Pattern: `\w+`}}
			},
			errContains: "field 'Extractors[0].Extensions': rule 'required'",
		},
		{
			name: "override with bad extension",
			mutate: func(cfg *GlobalConfig) {
				cfg.PurgeConfig.Extractors = []ExtensionExtractorConfig{{Extensions: []string{"*.vue"}, Pattern: `\w+`}}
			},
			errContains: "rule 'extension'",
		},
		{
			name: "bad log level",
			mutate: func(cfg *GlobalConfig) {
				cfg.LogConfig.LogLevel = "verbose"
			},
			errContains: "rule 'loglevel'",
		},
		{
			name: "bad log format",
			mutate: func(cfg *GlobalConfig) {
				cfg.LogConfig.LogFormat = "xml"
			},
			errContains: "rule 'logformat'",
		},
		{
			name: "cache enabled without path",
			mutate: func(cfg *GlobalConfig) {
				cfg.CacheConfig.Enabled = true
				cfg.CacheConfig.SQLitePath = ""
			},
			errContains: "section 'CacheConfig', field 'SQLitePath': rule 'required_if'",
		},
		{
			name: "zero workers allowed as default",
			mutate: func(cfg *GlobalConfig) {
				cfg.HarvestConfig.Workers = 0
			},
		},
		{
			name: "negative workers",
			mutate: func(cfg *GlobalConfig) {
				cfg.HarvestConfig.Workers = -1
			},
			errContains: "field 'Workers': rule 'min' (expected: 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	assert.Error(t, ValidateConfig(nil))
}

func TestIsValidGlob(t *testing.T) {
	assert.True(t, IsValidGlob("./**/*.html"))
	assert.True(t, IsValidGlob("src/**/*.{js,ts}"))
	assert.False(t, IsValidGlob(""))
	assert.False(t, IsValidGlob("./"))
	assert.False(t, IsValidGlob("src/[a-"))
}
