package memstore

import (
	"fmt"
	"sort"
	"sync"

	"unitoken/internal/domain"
	"unitoken/internal/port"
)

// MemoryStore keeps runs in memory. Used by `serve` without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]domain.Run
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]domain.Run),
	}
}

func (s *MemoryStore) SaveRun(run domain.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run has no id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(id string) (domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return domain.Run{}, fmt.Errorf("%w: %s", port.ErrRunNotFound, id)
	}
	return run, nil
}

func (s *MemoryStore) ListRuns() ([]domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]domain.RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		summaries = append(summaries, run.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (s *MemoryStore) DeleteRun(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return fmt.Errorf("%w: %s", port.ErrRunNotFound, id)
	}
	delete(s.runs, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
