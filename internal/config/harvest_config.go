package config

// HarvestConfig controls how named input files are read and scanned.
type HarvestConfig struct {
	Workers       int    `json:"workers,omitempty" yaml:"workers,omitempty" validate:"omitempty,min=1"`
	MaxFileSizeMB int    `json:"max_file_size_mb,omitempty" yaml:"max_file_size_mb,omitempty" validate:"omitempty,min=1"`
	ProjectRoot   string `json:"project_root,omitempty" yaml:"project_root,omitempty"`
}

// NewDefaultHarvestConfig creates default harvest configuration
func NewDefaultHarvestConfig() HarvestConfig {
	return HarvestConfig{
		Workers:       DefaultHarvestWorkers,
		MaxFileSizeMB: DefaultHarvestMaxFileSizeMB,
		ProjectRoot:   DefaultHarvestProjectRoot,
	}
}

// MaxFileSizeBytes converts MaxFileSizeMB to bytes; zero means no limit.
func (hc HarvestConfig) MaxFileSizeBytes() int64 {
	if hc.MaxFileSizeMB <= 0 {
		return 0
	}
	return int64(hc.MaxFileSizeMB) * 1024 * 1024
}
