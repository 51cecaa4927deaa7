package usecase

import (
	"time"

	"github.com/google/uuid"
	"unitoken/internal/domain"
	"unitoken/internal/port"
)

// RunRecorder stores batch results as runs.
type RunRecorder struct {
	store port.RunStore
	now   func() time.Time
}

// NewRunRecorder creates a recorder writing to store.
func NewRunRecorder(store port.RunStore) *RunRecorder {
	return &RunRecorder{
		store: store,
		now:   time.Now,
	}
}

// RecordTokens saves token-level batch results. sources labels each item
// (file path, line number) and may be nil.
func (r *RunRecorder) RecordTokens(sources []string, results []TokensResult) (domain.Run, error) {
	run := r.newRun(false)
	for i, res := range results {
		run.Items = append(run.Items, domain.RunItem{
			Source:   sourceAt(sources, i),
			Tokens:   res.Tokens,
			Language: res.Language,
		})
	}
	return run, r.store.SaveRun(run)
}

// RecordSentences saves sentence-level batch results.
func (r *RunRecorder) RecordSentences(sources []string, results []SentencesResult) (domain.Run, error) {
	run := r.newRun(true)
	for i, res := range results {
		run.Items = append(run.Items, domain.RunItem{
			Source:         sourceAt(sources, i),
			SentenceTokens: res.Sentences,
			Language:       res.Language,
		})
	}
	return run, r.store.SaveRun(run)
}

func (r *RunRecorder) newRun(sentences bool) domain.Run {
	return domain.Run{
		ID:        uuid.NewString(),
		CreatedAt: r.now().UTC(),
		Sentences: sentences,
		Items:     []domain.RunItem{},
	}
}

func sourceAt(sources []string, i int) string {
	if i < len(sources) {
		return sources[i]
	}
	return ""
}
