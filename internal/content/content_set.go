// Package content decides whether a file belongs to the set of files
// scanned for used tokens. It matches paths against the configured globs and
// never walks the file system.
package content

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/aleister1102/purgeconf/internal/common"

	"github.com/bmatcuk/doublestar/v4"
)

// ContentSet is the union of a list of content globs. Pattern order has no
// effect on membership.
type ContentSet struct {
	patterns   []string
	normalized []string
}

// NewContentSet validates and compiles patterns. Patterns are relative to the
// project root; a leading "./" is optional.
func NewContentSet(patterns []string) (*ContentSet, error) {
	if len(patterns) == 0 {
		return nil, common.NewValidationError("content", patterns, "at least one glob pattern is required")
	}

	cs := &ContentSet{
		patterns:   make([]string, 0, len(patterns)),
		normalized: make([]string, 0, len(patterns)),
	}
	for i, pattern := range patterns {
		normalized := normalizePattern(pattern)
		if normalized == "" {
			return nil, common.NewValidationError("content", i, "glob pattern cannot be empty")
		}
		if !doublestar.ValidatePattern(normalized) {
			return nil, common.NewValidationError("content", pattern, "malformed glob pattern")
		}
		cs.patterns = append(cs.patterns, pattern)
		cs.normalized = append(cs.normalized, normalized)
	}
	return cs, nil
}

// Patterns returns the patterns as configured.
func (cs *ContentSet) Patterns() []string {
	out := make([]string, len(cs.patterns))
	copy(out, cs.patterns)
	return out
}

// Matches reports whether the root-relative path matches any pattern.
func (cs *ContentSet) Matches(relPath string) bool {
	name := normalizePath(relPath)
	for _, pattern := range cs.normalized {
		if doublestar.MatchUnvalidated(pattern, name) {
			return true
		}
	}
	return false
}

// MatchingPatterns returns every configured pattern that matches relPath.
func (cs *ContentSet) MatchingPatterns(relPath string) []string {
	name := normalizePath(relPath)
	var matched []string
	for i, pattern := range cs.normalized {
		if doublestar.MatchUnvalidated(pattern, name) {
			matched = append(matched, cs.patterns[i])
		}
	}
	return matched
}

// RelativeTo expresses p relative to root with forward slashes. Paths
// outside root are returned cleaned and unchanged.
func RelativeTo(root, p string) string {
	if root == "" {
		root = "."
	}
	absRoot, errRoot := filepath.Abs(root)
	absPath, errPath := filepath.Abs(p)
	if errRoot == nil && errPath == nil {
		if rel, err := filepath.Rel(absRoot, absPath); err == nil {
			rel = filepath.ToSlash(rel)
			if rel != ".." && !strings.HasPrefix(rel, "../") {
				return rel
			}
		}
	}
	return filepath.ToSlash(filepath.Clean(p))
}

func normalizePattern(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	for strings.HasPrefix(pattern, "./") {
		pattern = strings.TrimPrefix(pattern, "./")
	}
	return pattern
}

func normalizePath(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	return strings.TrimPrefix(p, "./")
}
