package config

// PurgeConfig is the record handed to the purging tool: which files to scan
// and how to pull tokens out of them.
type PurgeConfig struct {
	Content          []string                   `json:"content" yaml:"content" validate:"required,min=1,dive,required,glob"`
	DefaultExtractor ExtractorConfig            `json:"default_extractor" yaml:"default_extractor"`
	Extractors       []ExtensionExtractorConfig `json:"extractors,omitempty" yaml:"extractors,omitempty" validate:"omitempty,dive"`
}

// ExtractorConfig describes the default extractor. An empty Pattern selects
// the built-in token rule.
type ExtractorConfig struct {
	Pattern        string `json:"pattern,omitempty" yaml:"pattern,omitempty" validate:"omitempty,ecmaregex"`
	SplitVariants  bool   `json:"split_variants" yaml:"split_variants"`
	MatchTimeoutMs int    `json:"match_timeout_ms,omitempty" yaml:"match_timeout_ms,omitempty" validate:"omitempty,min=1"`
}

// ExtensionExtractorConfig overrides the default extractor for files with
// the listed extensions.
type ExtensionExtractorConfig struct {
	Extensions     []string `json:"extensions" yaml:"extensions" validate:"required,min=1,dive,extension"`
	Pattern        string   `json:"pattern" yaml:"pattern" validate:"required,ecmaregex"`
	MatchTimeoutMs int      `json:"match_timeout_ms,omitempty" yaml:"match_timeout_ms,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultPurgeConfig returns the stock purge configuration.
func NewDefaultPurgeConfig() PurgeConfig {
	return PurgeConfig{
		Content:          DefaultContent(),
		DefaultExtractor: NewDefaultExtractorConfig(),
		Extractors:       []ExtensionExtractorConfig{},
	}
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Pattern:        "",
		SplitVariants:  DefaultSplitVariants,
		MatchTimeoutMs: DefaultMatchTimeoutMs,
	}
}
