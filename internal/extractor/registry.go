package extractor

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/aleister1102/purgeconf/internal/config"

	"github.com/rs/zerolog"
)

// Registry selects the extractor for a file by extension, falling back to
// the default extractor.
type Registry struct {
	logger           zerolog.Logger
	defaultExtractor Extractor
	byExtension      map[string]Extractor
}

// NewRegistry creates a registry whose fallback is def.
func NewRegistry(def Extractor, logger zerolog.Logger) *Registry {
	return &Registry{
		logger:           logger.With().Str("component", "ExtractorRegistry").Logger(),
		defaultExtractor: def,
		byExtension:      make(map[string]Extractor),
	}
}

// NewRegistryFromConfig builds the default extractor and every
// per-extension override described by cfg. When cacheEntries is positive,
// each extractor is wrapped in a CachedExtractor.
func NewRegistryFromConfig(cfg config.PurgeConfig, cacheEntries int, logger zerolog.Logger) (*Registry, error) {
	def, err := buildExtractor(cfg.DefaultExtractor.Pattern, cfg.DefaultExtractor.SplitVariants, cfg.DefaultExtractor.MatchTimeoutMs, cacheEntries, logger)
	if err != nil {
		return nil, common.WrapError(err, "failed to build default extractor")
	}

	registry := NewRegistry(def, logger)
	for i, override := range cfg.Extractors {
		e, err := buildExtractor(override.Pattern, false, override.MatchTimeoutMs, cacheEntries, logger)
		if err != nil {
			return nil, common.WrapErrorf(err, "failed to build extractor %d", i)
		}
		registry.Register(override.Extensions, e)
	}

	registry.logger.Debug().
		Str("default", IdentityOf(def)).
		Int("overrides", len(registry.byExtension)).
		Msg("Extractor registry initialized")
	return registry, nil
}

func buildExtractor(pattern string, splitVariants bool, timeoutMs int, cacheEntries int, logger zerolog.Logger) (Extractor, error) {
	var e Extractor
	if pattern == "" {
		e = NewDefaultExtractor(splitVariants)
	} else {
		pe, err := NewPatternExtractor(pattern, time.Duration(timeoutMs)*time.Millisecond, logger)
		if err != nil {
			return nil, err
		}
		e = pe
	}

	if cacheEntries > 0 {
		return NewCachedExtractor(e, cacheEntries)
	}
	return e, nil
}

// Register binds e to each extension. Extensions are matched case
// insensitively; the leading dot is optional. Later registrations win.
func (r *Registry) Register(extensions []string, e Extractor) {
	for _, ext := range extensions {
		key := normalizeExtension(ext)
		if key == "" {
			continue
		}
		r.byExtension[key] = e
	}
}

// Resolve returns the extractor for path.
func (r *Registry) Resolve(path string) Extractor {
	if e, ok := r.byExtension[normalizeExtension(filepath.Ext(path))]; ok {
		return e
	}
	return r.defaultExtractor
}

// Default returns the fallback extractor.
func (r *Registry) Default() Extractor {
	return r.defaultExtractor
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
