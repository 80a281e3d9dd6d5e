package harvester

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aleister1102/purgeconf/internal/config"
	"github.com/aleister1102/purgeconf/internal/content"
	"github.com/aleister1102/purgeconf/internal/extractor"
	"github.com/aleister1102/purgeconf/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]string
	getErr  error
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]string)}
}

func (m *memoryCache) Get(_ context.Context, hash, id string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	tokens, ok := m.entries[hash+"|"+id]
	return tokens, ok, nil
}

func (m *memoryCache) Put(_ context.Context, hash, id string, tokens []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.entries[hash+"|"+id] = tokens
	return nil
}

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.html":        `<div class="btn btn-primary hover:bg-red-500"></div>`,
		"admin/login.php":   `<?php echo '<form class="form-inline">'; ?>`,
		"src/app.js":        `el.classList.add("is-open", "w-1/2")`,
		"styles/site.css":   `.unused { color: red }`,
		"src/components.md": `ignored`,
	}
	for rel, body := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
	return root
}

func newHarvester(t *testing.T, root string, opts ...Option) *Harvester {
	t.Helper()
	registry, err := extractor.NewRegistryFromConfig(config.NewDefaultPurgeConfig(), 0, zerolog.Nop())
	require.NoError(t, err)

	cfg := config.NewDefaultHarvestConfig()
	cfg.ProjectRoot = root
	cfg.Workers = 2

	h, err := NewHarvester(registry, cfg, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return h
}

func TestHarvester_HarvestWithScope(t *testing.T) {
	root := writeProject(t)
	cs, err := content.NewContentSet(config.DefaultContent())
	require.NoError(t, err)

	h := newHarvester(t, root, WithContentSet(cs))
	inputs := []Input{
		{Path: filepath.Join(root, "index.html")},
		{Path: filepath.Join(root, "styles/site.css")},
		{Path: filepath.Join(root, "admin/login.php")},
		{Path: filepath.Join(root, "src/app.js")},
		{Path: filepath.Join(root, "src/missing.js")},
	}

	result, err := h.Harvest(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, result.Files, 5)

	assert.Equal(t, inputs[0].Path, result.Files[0].Path)
	assert.Contains(t, result.Files[0].Tokens, "btn-primary")
	assert.Contains(t, result.Files[0].Tokens, "hover:bg-red-500")
	assert.Contains(t, result.Files[0].Tokens, "bg-red-500")
	assert.Equal(t, "default+variants", result.Files[0].Extractor)

	assert.True(t, result.Files[1].Skipped)
	assert.Equal(t, models.SkipReasonOutOfScope, result.Files[1].Reason)
	assert.Empty(t, result.Files[1].Tokens)

	assert.Contains(t, result.Files[2].Tokens, "form-inline")
	assert.Contains(t, result.Files[3].Tokens, "w-1/2")

	assert.True(t, result.Files[4].Skipped)
	assert.Equal(t, models.SkipReasonReadError, result.Files[4].Reason)
	assert.NotEmpty(t, result.Files[4].Error)

	assert.Equal(t, 2, result.SkipCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 3, result.ScannedCount())
	assert.NotContains(t, result.Tokens, "unused")
	assert.IsIncreasing(t, result.Tokens)
}

func TestHarvester_NoScopeScansEverything(t *testing.T) {
	root := writeProject(t)
	h := newHarvester(t, root)

	result, err := h.Harvest(context.Background(), []Input{{Path: filepath.Join(root, "styles/site.css")}})
	require.NoError(t, err)
	assert.Contains(t, result.Tokens, "unused")
	assert.Zero(t, result.SkipCount)
}

func TestHarvester_InlineContent(t *testing.T) {
	h := newHarvester(t, t.TempDir())

	result, err := h.Harvest(context.Background(), []Input{
		{Path: StdinPath, Content: []byte(`class="btn btn-primary"`)},
		{Path: StdinPath, Content: []byte{}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"btn", "btn-primary", "class"}, result.Tokens)
	assert.Equal(t, []string{}, result.Files[1].Tokens)
}

func TestHarvester_ExtensionOverride(t *testing.T) {
	cfg := config.NewDefaultPurgeConfig()
	cfg.Extractors = []config.ExtensionExtractorConfig{{Extensions: []string{".vue"}, Pattern: `[a-z]+`}}
	registry, err := extractor.NewRegistryFromConfig(cfg, 0, zerolog.Nop())
	require.NoError(t, err)

	h, err := NewHarvester(registry, config.NewDefaultHarvestConfig(), zerolog.Nop())
	require.NoError(t, err)

	result, err := h.Harvest(context.Background(), []Input{{Path: "App.vue", Content: []byte("btn-primary")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"btn", "primary"}, result.Files[0].Tokens)
	assert.Equal(t, "pattern:[a-z]+", result.Files[0].Extractor)
}

func TestHarvester_Cache(t *testing.T) {
	cache := newMemoryCache()
	h := newHarvester(t, t.TempDir(), WithCache(cache))
	inputs := []Input{{Path: "a.html", Content: []byte(`class="card"`)}}

	first, err := h.Harvest(context.Background(), inputs)
	require.NoError(t, err)
	assert.Zero(t, first.CacheHits)
	assert.Equal(t, 1, cache.puts)

	second, err := h.Harvest(context.Background(), inputs)
	require.NoError(t, err)
	assert.Equal(t, 1, second.CacheHits)
	assert.True(t, second.Files[0].CacheHit)
	assert.Equal(t, first.Tokens, second.Tokens)
	assert.Equal(t, 1, cache.puts)
}

func TestHarvester_CacheErrorFallsBackToExtraction(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("disk gone")
	h := newHarvester(t, t.TempDir(), WithCache(cache))

	result, err := h.Harvest(context.Background(), []Input{{Path: "a.html", Content: []byte("btn")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"btn"}, result.Tokens)
	assert.Zero(t, result.CacheHits)
}

func TestHarvester_Cancelled(t *testing.T) {
	h := newHarvester(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Harvest(ctx, []Input{{Path: "a.html", Content: []byte("btn")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHarvester_NilRegistry(t *testing.T) {
	_, err := NewHarvester(nil, config.NewDefaultHarvestConfig(), zerolog.Nop())
	assert.Error(t, err)
}
