package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"unitoken/internal/adapter/memstore"
	"unitoken/internal/domain"
)

func TestRunRecorder_RecordTokens(t *testing.T) {
	st := memstore.NewMemoryStore()
	rec := NewRunRecorder(st)
	rec.now = func() time.Time { return time.Unix(1700000000, 0) }

	results := []TokensResult{
		{Tokens: []string{"a"}, Language: domain.NewLanguageResult("en", 0.9)},
		{Tokens: []string{}, Language: domain.LanguageResult{Language: "xx"}},
	}
	run, err := rec.RecordTokens([]string{"line 1"}, results)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := uuid.Parse(run.ID); err != nil {
		t.Errorf("expected UUID run id, got %q", run.ID)
	}
	if run.Sentences {
		t.Error("expected token-level run")
	}

	stored, err := st.GetRun(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Items) != 2 || stored.Items[0].Source != "line 1" || stored.Items[1].Source != "" {
		t.Errorf("unexpected items %+v", stored.Items)
	}
	if !stored.CreatedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("unexpected timestamp %v", stored.CreatedAt)
	}
}

func TestRunRecorder_RecordSentences(t *testing.T) {
	st := memstore.NewMemoryStore()
	rec := NewRunRecorder(st)

	run, err := rec.RecordSentences(nil, []SentencesResult{
		{Sentences: [][]string{{"Hi", "."}}, Language: domain.NewLanguageResult("en", 1)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !run.Sentences || len(run.Items[0].SentenceTokens) != 1 {
		t.Errorf("unexpected run %+v", run)
	}
}
