package cache

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"unitoken/internal/adapter/analyzer"
	"unitoken/internal/logger"
	"unitoken/internal/port"
)

// Builder constructs the pipeline for a language.
type Builder func(lang string) (port.Pipeline, error)

// BlankBuilder builds template pipelines with a sentencizer.
func BlankBuilder(lang string) (port.Pipeline, error) {
	return analyzer.NewBlankPipeline(lang)
}

// ModelCache lazily builds one pipeline per language and keeps it for the
// lifetime of the cache. Builds are serialized, so each language is built
// at most once. Failed builds are not cached.
type ModelCache struct {
	mu      sync.RWMutex
	buildMu sync.Mutex
	entries map[string]port.Pipeline
	build   Builder
	log     *zap.Logger
}

// NewModelCache creates a cache. A nil build defaults to BlankBuilder.
func NewModelCache(build Builder, log *zap.Logger) *ModelCache {
	if build == nil {
		build = BlankBuilder
	}
	return &ModelCache{
		entries: make(map[string]port.Pipeline),
		build:   build,
		log:     logger.OrNop(log),
	}
}

// Get returns the cached pipeline for lang without building it.
func (c *ModelCache) Get(lang string) (port.Pipeline, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[lang]
	return p, ok
}

// GetOrBuild returns the pipeline for lang, building it on first use.
func (c *ModelCache) GetOrBuild(lang string) (port.Pipeline, error) {
	if p, ok := c.Get(lang); ok {
		return p, nil
	}

	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	// Another caller may have built it while we waited.
	if p, ok := c.Get(lang); ok {
		return p, nil
	}

	start := time.Now()
	c.log.Info("building template pipeline", zap.String("language", lang))
	p, err := c.build(lang)
	if err != nil {
		c.log.Warn("pipeline build failed", zap.String("language", lang), zap.Error(err))
		return nil, err
	}
	c.log.Debug("pipeline built", zap.String("language", lang), zap.Duration("took", time.Since(start)))

	c.mu.Lock()
	c.entries[lang] = p
	c.mu.Unlock()

	return p, nil
}

func (c *ModelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Languages returns the cached language codes, sorted.
func (c *ModelCache) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	langs := make([]string, 0, len(c.entries))
	for lang := range c.entries {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
