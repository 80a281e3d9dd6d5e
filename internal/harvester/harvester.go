// Package harvester runs the configured extractors over explicitly named
// inputs and merges their tokens.
package harvester

import (
	"context"
	"sort"
	"time"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/aleister1102/purgeconf/internal/config"
	"github.com/aleister1102/purgeconf/internal/content"
	"github.com/aleister1102/purgeconf/internal/extractor"
	"github.com/aleister1102/purgeconf/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// StdinPath labels content read from standard input.
const StdinPath = "<stdin>"

// TokenCache is the persistent cache consulted before extraction.
type TokenCache interface {
	Get(ctx context.Context, contentHash, extractorID string) ([]string, bool, error)
	Put(ctx context.Context, contentHash, extractorID string, tokens []string) error
}

// Input is one unit of work. When Content is nil the file at Path is read.
type Input struct {
	Path    string
	Content []byte
}

// Harvester extracts tokens from inputs with a bounded worker pool.
type Harvester struct {
	logger   zerolog.Logger
	registry *extractor.Registry
	scope    *content.ContentSet
	cache    TokenCache
	files    *common.FileManager
	cfg      config.HarvestConfig
}

// Option configures a Harvester.
type Option func(*Harvester)

// WithContentSet skips path inputs that fall outside the content globs.
func WithContentSet(cs *content.ContentSet) Option {
	return func(h *Harvester) {
		h.scope = cs
	}
}

// WithCache enables the persistent token cache.
func WithCache(cache TokenCache) Option {
	return func(h *Harvester) {
		h.cache = cache
	}
}

// NewHarvester creates a Harvester.
func NewHarvester(registry *extractor.Registry, cfg config.HarvestConfig, logger zerolog.Logger, opts ...Option) (*Harvester, error) {
	if registry == nil {
		return nil, common.NewValidationError("registry", nil, "extractor registry cannot be nil")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = config.DefaultHarvestWorkers
	}
	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = config.DefaultHarvestProjectRoot
	}

	h := &Harvester{
		logger:   logger.With().Str("component", "Harvester").Logger(),
		registry: registry,
		files:    common.NewFileManager(logger),
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Harvest processes inputs concurrently. Per-file problems are recorded in
// the result; the returned error is non-nil only when ctx ends first.
func (h *Harvester) Harvest(ctx context.Context, inputs []Input) (*models.HarvestResult, error) {
	result := &models.HarvestResult{
		Files:     make([]models.FileTokens, len(inputs)),
		StartedAt: time.Now(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.cfg.Workers)

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if check := common.CheckCancellationWithLog(gctx, h.logger, "harvest"); check.Cancelled {
				return check.Error
			}
			result.Files[i] = h.harvestOne(gctx, input)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, common.WrapError(err, "harvest cancelled")
	}
	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(err, "harvest cancelled")
	}

	var all []string
	for _, file := range result.Files {
		if file.Skipped {
			result.SkipCount++
		}
		if file.Error != "" {
			result.ErrorCount++
		}
		if file.CacheHit {
			result.CacheHits++
		}
		all = append(all, file.Tokens...)
	}
	result.Tokens = extractor.Dedupe(all)
	sort.Strings(result.Tokens)
	result.Duration = time.Since(result.StartedAt)

	h.logger.Info().
		Int("inputs", len(inputs)).
		Int("skipped", result.SkipCount).
		Int("errors", result.ErrorCount).
		Int("cache_hits", result.CacheHits).
		Int("unique_tokens", len(result.Tokens)).
		Dur("duration", result.Duration).
		Msg("Harvest finished")
	return result, nil
}

func (h *Harvester) harvestOne(ctx context.Context, input Input) models.FileTokens {
	ft := models.FileTokens{Path: input.Path, Tokens: []string{}}

	raw := input.Content
	if raw == nil {
		if h.scope != nil {
			rel := content.RelativeTo(h.cfg.ProjectRoot, input.Path)
			if !h.scope.Matches(rel) {
				h.logger.Debug().Str("path", input.Path).Str("relative", rel).Msg("Outside content globs, skipping")
				ft.Skipped = true
				ft.Reason = models.SkipReasonOutOfScope
				return ft
			}
		}

		opts := common.DefaultFileReadOptions()
		opts.MaxSize = h.cfg.MaxFileSizeBytes()
		data, err := h.files.ReadFile(ctx, input.Path, opts)
		if err != nil {
			h.logger.Warn().Err(err).Str("path", input.Path).Msg("Failed to read input")
			ft.Skipped = true
			ft.Reason = models.SkipReasonReadError
			ft.Error = err.Error()
			return ft
		}
		raw = data
	}

	e := h.registry.Resolve(input.Path)
	ft.Extractor = extractor.IdentityOf(e)
	text := string(raw)

	var hash string
	if h.cache != nil {
		hash = extractor.ContentHash(text)
		tokens, found, err := h.cache.Get(ctx, hash, ft.Extractor)
		if err != nil {
			h.logger.Warn().Err(err).Str("path", input.Path).Msg("Token cache lookup failed")
		} else if found {
			ft.Tokens = tokens
			ft.CacheHit = true
			return ft
		}
	}

	ft.Tokens = e.Extract(text)

	if h.cache != nil {
		if err := h.cache.Put(ctx, hash, ft.Extractor, ft.Tokens); err != nil {
			h.logger.Warn().Err(err).Str("path", input.Path).Msg("Token cache write failed")
		}
	}

	h.logger.Debug().
		Str("path", input.Path).
		Str("extractor", ft.Extractor).
		Int("token_count", len(ft.Tokens)).
		Msg("Extracted tokens")
	return ft
}
