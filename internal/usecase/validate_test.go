package usecase

import (
	"errors"
	"strings"
	"testing"

	"unitoken/internal/adapter/analyzer"
	"unitoken/internal/adapter/cache"
	"unitoken/internal/domain"
)

func TestValidatePredefined_Nil(t *testing.T) {
	models, err := ValidatePredefined(nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if models == nil || len(models) != 0 {
		t.Errorf("expected empty map, got %v", models)
	}
}

func TestValidatePredefined_FirstOffenderSorted(t *testing.T) {
	models := Models{
		"zz": analyzer.NewPipeline("zz"),
		"aa": analyzer.NewPipeline("aa"),
	}

	_, err := ValidatePredefined(models, true)
	if !errors.Is(err, ErrMissingCapability) {
		t.Fatalf("expected ErrMissingCapability, got %v", err)
	}
	if !strings.Contains(err.Error(), `"aa"`) {
		t.Errorf("expected first offender in sorted order, got %q", err.Error())
	}

	if _, err := ValidatePredefined(models, false); err != nil {
		t.Errorf("expected token-level validation to pass, got %v", err)
	}
}

func TestValidatePredefined_NilPipeline(t *testing.T) {
	var typedNil *analyzer.Pipeline

	tests := []struct {
		name   string
		models Models
		lang   string
	}{
		{"untyped nil", Models{"en": analyzer.NewPipeline("en"), "xx": nil}, "xx"},
		{"typed nil", Models{"de": typedNil, "en": analyzer.NewPipeline("en")}, "de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, needsSentence := range []bool{false, true} {
				_, err := ValidatePredefined(tt.models, needsSentence)
				if !errors.Is(err, ErrInvalidModel) {
					t.Fatalf("expected ErrInvalidModel, got %v", err)
				}
				if !strings.Contains(err.Error(), `"`+tt.lang+`"`) {
					t.Errorf("expected error to name %q, got %q", tt.lang, err.Error())
				}
			}
		})
	}
}

func TestTokenize_NilPipelineRejected(t *testing.T) {
	uc, _ := newUseCase(english(0.99), 0)

	if _, _, err := uc.Tokenize("Hello world.", DefaultScoreThreshold, Models{"en": nil}); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("expected ErrInvalidModel, got %v", err)
	}
	if _, err := uc.TokenizeBatch([]string{"Hello world."}, Models{"en": nil}); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("expected ErrInvalidModel for batch, got %v", err)
	}
}

func TestValidateDetection(t *testing.T) {
	allowed := domain.NewLanguages("en", "de")

	tests := []struct {
		name      string
		result    domain.LanguageResult
		threshold float64
		wantErr   error
	}{
		{"accepted", domain.NewLanguageResult("en", 0.95), 0.9, nil},
		{"exactly at threshold", domain.NewLanguageResult("de", 0.9), 0.9, nil},
		{"below threshold", domain.NewLanguageResult("en", 0.5), 0.9, ErrBelowThreshold},
		{"not allowed", domain.NewLanguageResult("fr", 0.99), 0.9, ErrUnsupportedLanguage},
		{"threshold checked first", domain.NewLanguageResult("fr", 0.1), 0.9, ErrBelowThreshold},
		{"zero threshold", domain.NewLanguageResult("en", 0), 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDetection(tt.result, tt.threshold, allowed)
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestModelResolver_Resolve(t *testing.T) {
	mc := cache.NewModelCache(nil, nil)
	r := NewModelResolver(mc)

	first, err := r.Resolve("en", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Resolve("en", Models{})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the cached pipeline on repeated resolution")
	}

	supplied := analyzer.NewPipeline("en")
	got, err := r.Resolve("en", Models{"en": supplied})
	if err != nil {
		t.Fatal(err)
	}
	if got != supplied {
		t.Error("expected supplied pipeline to win over the template")
	}

	if _, err := r.Resolve("xx", nil); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("expected ErrUnsupportedLanguage, got %v", err)
	}
	if got := r.Cached(); len(got) != 1 || got[0] != "en" {
		t.Errorf("expected only en cached, got %v", got)
	}
}
