package extractor

import (
	"time"

	"github.com/aleister1102/purgeconf/internal/common"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
)

// DefaultMatchTimeout bounds a single scan with a user supplied pattern.
const DefaultMatchTimeout = 2 * time.Second

// PatternExtractor applies an ECMAScript-style regular expression to the
// whole content and returns every match, like String.prototype.match with
// the global flag. Lookbehind is supported.
type PatternExtractor struct {
	logger  zerolog.Logger
	pattern string
	re      *regexp2.Regexp
}

// CompilePattern compiles pattern with ECMAScript semantics.
func CompilePattern(pattern string) (*regexp2.Regexp, error) {
	if pattern == "" {
		return nil, common.NewValidationError("pattern", pattern, "pattern cannot be empty")
	}
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, common.WrapErrorf(common.ErrInvalidInput, "failed to compile pattern %q: %v", pattern, err)
	}
	return re, nil
}

// NewPatternExtractor compiles pattern. A non-positive timeout selects
// DefaultMatchTimeout.
func NewPatternExtractor(pattern string, timeout time.Duration, logger zerolog.Logger) (*PatternExtractor, error) {
	re, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}
	re.MatchTimeout = timeout

	return &PatternExtractor{
		logger:  logger.With().Str("component", "PatternExtractor").Logger(),
		pattern: pattern,
		re:      re,
	}, nil
}

// Extract implements Extractor. A scan that hits the match timeout returns
// the tokens found before it.
func (pe *PatternExtractor) Extract(content string) []string {
	tokens := []string{}
	if content == "" {
		return tokens
	}

	m, err := pe.re.FindStringMatch(content)
	for m != nil && err == nil {
		if s := m.String(); s != "" {
			tokens = append(tokens, s)
		}
		m, err = pe.re.FindNextMatch(m)
	}
	if err != nil {
		pe.logger.Warn().
			Err(err).
			Str("pattern", pe.pattern).
			Int("content_length", len(content)).
			Int("tokens_before_abort", len(tokens)).
			Msg("Pattern scan aborted")
	}

	return tokens
}

// Pattern returns the source pattern.
func (pe *PatternExtractor) Pattern() string {
	return pe.pattern
}

// ID implements Identifier.
func (pe *PatternExtractor) ID() string {
	return "pattern:" + pe.pattern
}
