package config

// CacheConfig controls memoization of extraction results. MemoryEntries
// sizes the in-process LRU; SQLitePath, when Enabled, persists tokens across
// runs.
type CacheConfig struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	MemoryEntries int    `json:"memory_entries,omitempty" yaml:"memory_entries,omitempty" validate:"omitempty,min=0"`
	SQLitePath    string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" validate:"required_if=Enabled true"`
}

// NewDefaultCacheConfig creates default cache configuration
func NewDefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:       DefaultCacheEnabled,
		MemoryEntries: DefaultCacheMemoryEntries,
		SQLitePath:    DefaultCacheSQLitePath,
	}
}
