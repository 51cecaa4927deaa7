package cache

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"unitoken/internal/adapter/analyzer"
	"unitoken/internal/port"
)

func TestModelCache_BuildsOnce(t *testing.T) {
	var builds int32
	c := NewModelCache(func(lang string) (port.Pipeline, error) {
		atomic.AddInt32(&builds, 1)
		return analyzer.NewBlankPipeline(lang)
	}, nil)

	first, err := c.GetOrBuild("en")
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.GetOrBuild("en")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("expected the same pipeline on the second call")
	}
	if builds != 1 {
		t.Errorf("expected 1 build, got %d", builds)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestModelCache_SameOutputAcrossCalls(t *testing.T) {
	c := NewModelCache(nil, nil)

	a, _ := c.GetOrBuild("nl")
	b, _ := c.GetOrBuild("nl")

	docA, _ := a.Process("Dit is een zin. En nog een.")
	docB, _ := b.Process("Dit is een zin. En nog een.")
	if !reflect.DeepEqual(docA, docB) {
		t.Errorf("expected identical documents, got %v and %v", docA, docB)
	}
}

func TestModelCache_ConcurrentFirstUse(t *testing.T) {
	var builds int32
	c := NewModelCache(func(lang string) (port.Pipeline, error) {
		atomic.AddInt32(&builds, 1)
		return analyzer.NewBlankPipeline(lang)
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.GetOrBuild("de"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if builds != 1 {
		t.Errorf("expected 1 build under concurrent use, got %d", builds)
	}
}

func TestModelCache_FailureNotCached(t *testing.T) {
	c := NewModelCache(nil, nil)

	_, err := c.GetOrBuild("xx")
	if !errors.Is(err, analyzer.ErrNoTemplate) {
		t.Errorf("expected ErrNoTemplate, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache after failed build, got %d", c.Len())
	}
}

func TestModelCache_Languages(t *testing.T) {
	c := NewModelCache(nil, nil)
	for _, lang := range []string{"fr", "de", "en"} {
		if _, err := c.GetOrBuild(lang); err != nil {
			t.Fatal(err)
		}
	}

	expected := []string{"de", "en", "fr"}
	if got := c.Languages(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}
