package cli

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"unitoken/config"
	"unitoken/internal/adapter/cache"
	"unitoken/internal/adapter/langdetect"
	"unitoken/internal/adapter/store"
	"unitoken/internal/usecase"
)

// newTokenizeUseCase wires the detector, the template cache and the use case.
func newTokenizeUseCase(cfg *config.Config, log *zap.Logger) (*usecase.TokenizeUseCase, error) {
	classifier, err := langdetect.NewLinguaClassifier(cfg.Detector, cfg.Tokenize.FallbackLanguage)
	if err != nil {
		return nil, fmt.Errorf("failed to create language detector: %w", err)
	}

	models := cache.NewModelCache(cache.BlankBuilder, log)
	resolver := usecase.NewModelResolver(models)

	return usecase.NewTokenizeUseCase(classifier, resolver, cfg.Batch.ScoreThreshold, log), nil
}

// openRunStore opens the run database, creating it when create is set.
func openRunStore(cfg *config.Config, dir string, create bool) (*store.BoltStore, error) {
	dbPath := cfg.StoreDBPath(dir)

	if create {
		if err := cfg.EnsureDataDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	} else if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no run store found at %s. Run 'unitoken batch --save' first", dbPath)
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}
	return st, nil
}
