package usecase

import (
	"fmt"

	"unitoken/internal/adapter/analyzer"
	"unitoken/internal/adapter/cache"
	"unitoken/internal/port"
)

// ModelResolver picks the pipeline for a language.
type ModelResolver struct {
	cache *cache.ModelCache
}

// NewModelResolver creates a resolver backed by cache.
func NewModelResolver(cache *cache.ModelCache) *ModelResolver {
	return &ModelResolver{cache: cache}
}

// Resolve returns the supplied pipeline for lang if there is one, otherwise
// the cached template pipeline.
func (r *ModelResolver) Resolve(lang string, models Models) (port.Pipeline, error) {
	if p, ok := models[lang]; ok {
		return p, nil
	}
	if !analyzer.HasTemplate(lang) {
		return nil, fmt.Errorf("%w: no pipeline for %q and no supplied model", ErrUnsupportedLanguage, lang)
	}
	return r.cache.GetOrBuild(lang)
}

// Cached returns the languages that have a built template pipeline.
func (r *ModelResolver) Cached() []string {
	return r.cache.Languages()
}
