// Package extractor turns raw file content into candidate selector tokens.
//
// Every Extractor in this package is pure: the same content always yields the
// same token sequence, no state is shared between calls, and no input makes
// an extractor fail. Callers may therefore invoke extractors concurrently and
// memoize their results.
package extractor

import (
	"crypto/sha256"
	"encoding/hex"
)

// Extractor produces candidate tokens from file content. Duplicates are
// allowed; an input without matches yields an empty, non-nil slice.
type Extractor interface {
	Extract(content string) []string
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(content string) []string

// Extract calls f(content).
func (f ExtractorFunc) Extract(content string) []string {
	tokens := f(content)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// Identifier is implemented by extractors that can name their behaviour.
// The identity becomes part of persistent cache keys, so two extractors with
// the same identity must produce the same tokens.
type Identifier interface {
	ID() string
}

// IdentityOf returns the identity of e, or "custom" when e does not
// implement Identifier.
func IdentityOf(e Extractor) string {
	if id, ok := e.(Identifier); ok {
		return id.ID()
	}
	return "custom"
}

// ContentHash returns the hex SHA-256 of content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Dedupe drops repeated tokens, keeping the first occurrence of each.
func Dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, exists := seen[token]; exists {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
