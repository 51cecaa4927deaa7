package usecase

import (
	"reflect"
	"testing"

	"unitoken/config"
	"unitoken/internal/adapter/cache"
	"unitoken/internal/adapter/langdetect"
)

func newLinguaUseCase(t *testing.T) *TokenizeUseCase {
	t.Helper()
	classifier, err := langdetect.NewLinguaClassifier(config.DetectorConfig{}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mc := cache.NewModelCache(cache.BlankBuilder, nil)
	return NewTokenizeUseCase(classifier, NewModelResolver(mc), DefaultScoreThreshold, nil)
}

func TestTokenize_WithLinguaClassifier(t *testing.T) {
	uc := newLinguaUseCase(t)
	text := "the dog walked home, and ate nice cookies down by the bay."

	tokens, result, err := uc.Tokenize(text, DefaultScoreThreshold, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Language != "en" || !result.Valid {
		t.Errorf("unexpected language result %+v", result)
	}
	if result.Score < DefaultScoreThreshold {
		t.Errorf("expected score of at least %v, got %f", DefaultScoreThreshold, result.Score)
	}

	sents, _, err := uc.SentTokenize(text, DefaultScoreThreshold, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tokens, flatten(sents)) {
		t.Errorf("expected tokens %v to equal flattened sentences %v", tokens, flatten(sents))
	}
	if tokens[0] != "the" || tokens[len(tokens)-1] != "." {
		t.Errorf("unexpected tokens %v", tokens)
	}
}

func TestTokenizeBatch_WithLinguaClassifier(t *testing.T) {
	uc := newLinguaUseCase(t)
	texts := []string{
		"the dog walked home, and ate nice cookies down by the bay.",
		"Der Hund ist nach Hause gegangen.",
	}

	results, err := uc.TokenizeBatch(texts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"en", "de"}
	for i, r := range results {
		if r.Language.Language != want[i] || !r.Language.Valid {
			t.Errorf("item %d: expected valid %s, got %+v", i, want[i], r.Language)
		}
		if len(r.Tokens) == 0 {
			t.Errorf("item %d: expected tokens", i)
		}
	}
}
