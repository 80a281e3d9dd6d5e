package extractor

import (
	"slices"

	"github.com/aleister1102/purgeconf/internal/common"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedExtractor memoizes another extractor by content hash. It is only
// correct because extractors are pure.
type CachedExtractor struct {
	next  Extractor
	cache *lru.Cache[string, []string]
}

// NewCachedExtractor wraps next with an LRU of the given number of entries.
func NewCachedExtractor(next Extractor, entries int) (*CachedExtractor, error) {
	if next == nil {
		return nil, common.NewValidationError("next", nil, "extractor cannot be nil")
	}
	cache, err := lru.New[string, []string](entries)
	if err != nil {
		return nil, common.WrapError(err, "failed to create extraction cache")
	}
	return &CachedExtractor{next: next, cache: cache}, nil
}

// Extract implements Extractor. Returned slices are never shared with the
// cache.
func (c *CachedExtractor) Extract(content string) []string {
	key := ContentHash(content)
	if tokens, ok := c.cache.Get(key); ok {
		return slices.Clone(tokens)
	}

	tokens := c.next.Extract(content)
	c.cache.Add(key, slices.Clone(tokens))
	return tokens
}

// Len reports the number of cached entries.
func (c *CachedExtractor) Len() int {
	return c.cache.Len()
}

// ID implements Identifier by delegating to the wrapped extractor.
func (c *CachedExtractor) ID() string {
	return IdentityOf(c.next)
}
