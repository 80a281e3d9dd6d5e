package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/aleister1102/purgeconf/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentSet_DefaultGlobs(t *testing.T) {
	cs, err := NewContentSet(config.DefaultContent())
	require.NoError(t, err)

	tests := []struct {
		path    string
		matches bool
	}{
		{"index.html", true},
		{"./index.html", true},
		{"pages/about/team.html", true},
		{"admin/login.php", true},
		{"src/app.js", true},
		{"src/components/nav/menu.js", true},
		{"lib/app.js", false},
		{"styles/site.css", false},
		{"index.htm", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.matches, cs.Matches(tt.path))
		})
	}
}

func TestContentSet_OrderIrrelevant(t *testing.T) {
	forward, err := NewContentSet([]string{"./**/*.html", "./src/**/*.js"})
	require.NoError(t, err)
	reverse, err := NewContentSet([]string{"./src/**/*.js", "./**/*.html"})
	require.NoError(t, err)

	for _, p := range []string{"a.html", "src/x.js", "x.js", "src/y.css"} {
		assert.Equal(t, forward.Matches(p), reverse.Matches(p), p)
	}
}

func TestContentSet_MatchingPatterns(t *testing.T) {
	cs, err := NewContentSet([]string{"./**/*.html", "./src/**/*", "./src/**/*.js"})
	require.NoError(t, err)

	assert.Equal(t, []string{"./src/**/*", "./src/**/*.js"}, cs.MatchingPatterns("src/main.js"))
	assert.Nil(t, cs.MatchingPatterns("docs/readme.md"))
	assert.Equal(t, []string{"./**/*.html", "./src/**/*", "./src/**/*.js"}, cs.Patterns())
}

func TestNewContentSet_Invalid(t *testing.T) {
	_, err := NewContentSet(nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = NewContentSet([]string{"./**/*.html", "  "})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = NewContentSet([]string{"src/[a-"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestRelativeTo(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "app.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(nested), 0755))

	assert.Equal(t, "src/app.js", RelativeTo(root, nested))
	assert.Equal(t, "src/app.js", RelativeTo(root, filepath.Join(root, "src", "..", "src", "app.js")))

	outside := filepath.Join(filepath.Dir(root), "elsewhere.html")
	assert.Equal(t, filepath.ToSlash(outside), RelativeTo(root, outside))
	assert.Equal(t, filepath.ToSlash(filepath.Dir(root)), RelativeTo(root, filepath.Dir(root)))
}

func TestRelativeTo_DotDotPrefixedChild(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "..cache", "x.html")

	assert.Equal(t, "..cache/x.html", RelativeTo(root, child))

	cs, err := NewContentSet(config.DefaultContent())
	require.NoError(t, err)
	assert.True(t, cs.Matches(RelativeTo(root, child)))
}
