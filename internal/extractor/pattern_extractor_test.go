package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternExtractor_LookbehindMatchesDefault(t *testing.T) {
	pe, err := NewPatternExtractor(DefaultPattern, 0, zerolog.Nop())
	require.NoError(t, err)

	inputs := []string{
		"",
		`class="btn btn-primary"`,
		"hover:bg-red-500 focus: md:hover::",
		"path/to/file",
		`<div class="w-1/2 lg:w-1/3">`,
		":root { --x: 1 }",
	}

	def := NewDefaultExtractor(false)
	for _, input := range inputs {
		assert.Equal(t, def.Extract(input), pe.Extract(input), "input %q", input)
	}
}

func TestPatternExtractor_CustomPattern(t *testing.T) {
	pe, err := NewPatternExtractor(`[A-Za-z0-9-_:/]+`, time.Second, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"foo", "bar:baz"}, pe.Extract("foo bar:baz"))
	assert.Equal(t, "pattern:[A-Za-z0-9-_:/]+", pe.ID())
	assert.Equal(t, `[A-Za-z0-9-_:/]+`, pe.Pattern())
}

func TestPatternExtractor_EmptyMatchesSkipped(t *testing.T) {
	pe, err := NewPatternExtractor(`x*`, 0, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"xx", "x"}, pe.Extract("axxbx"))
}

func TestPatternExtractor_InvalidPattern(t *testing.T) {
	_, err := NewPatternExtractor(`[unclosed`, 0, zerolog.Nop())
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = NewPatternExtractor("", 0, zerolog.Nop())
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestPatternExtractor_TimeoutKeepsEarlierTokens(t *testing.T) {
	pe, err := NewPatternExtractor(`ok|(a+)+b`, 20*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)

	var tokens []string
	assert.NotPanics(t, func() {
		tokens = pe.Extract("ok ok " + strings.Repeat("a", 40))
	})
	assert.Equal(t, []string{"ok", "ok"}, tokens)
}
