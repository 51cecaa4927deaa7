package memstore

import (
	"errors"
	"testing"
	"time"

	"unitoken/internal/domain"
	"unitoken/internal/port"
)

var _ port.RunStore = (*MemoryStore)(nil)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	base := time.Unix(1700000000, 0)

	for i, id := range []string{"a", "b"} {
		run := domain.Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.SaveRun(run); err != nil {
			t.Fatal(err)
		}
	}

	summaries, _ := s.ListRuns()
	if len(summaries) != 2 || summaries[0].ID != "b" {
		t.Errorf("expected newest first, got %+v", summaries)
	}

	if _, err := s.GetRun("a"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := s.DeleteRun("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetRun("a"); !errors.Is(err, port.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if err := s.SaveRun(domain.Run{}); err == nil {
		t.Error("expected error for run without id")
	}
}
