package langdetect

import (
	"reflect"
	"testing"

	"unitoken/config"
	"unitoken/internal/domain"
	"unitoken/internal/port"
	"unitoken/internal/usecase"
)

var _ port.LanguageClassifier = (*LinguaClassifier)(nil)

func newTestClassifier(t *testing.T) *LinguaClassifier {
	t.Helper()
	c, err := NewLinguaClassifier(config.DetectorConfig{Languages: []string{"en", "de", "fr"}}, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestLinguaClassifier_Detect(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		text string
		lang string
	}{
		{"the dog walked home, and ate nice cookies down by the bay.", "en"},
		{"Der Hund ist nach Hause gegangen und hat Kekse gegessen.", "de"},
		{"Le chien est rentré à la maison et a mangé des biscuits.", "fr"},
	}

	for _, tt := range tests {
		d, err := c.Detect(tt.text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Language != tt.lang {
			t.Errorf("Detect(%q) = %s, want %s", tt.text, d.Language, tt.lang)
		}
		if d.Score <= 0 || d.Score > 1 {
			t.Errorf("Detect(%q) score %f out of range", tt.text, d.Score)
		}
	}
}

func TestLinguaClassifier_ClearTextPassesDefaultThreshold(t *testing.T) {
	c, err := NewLinguaClassifier(config.DetectorConfig{}, "en")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		text string
		lang string
	}{
		{"the dog walked home, and ate nice cookies down by the bay.", "en"},
		{"Hello world.", "en"},
		{"Der Hund ist nach Hause gegangen.", "de"},
		{"Das ist ein Test.", "de"},
		{"Le chat est assis sur le tapis.", "fr"},
	}

	for _, tt := range tests {
		d, err := c.Detect(tt.text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Language != tt.lang {
			t.Errorf("Detect(%q) = %s, want %s", tt.text, d.Language, tt.lang)
		}
		if d.Score < usecase.DefaultScoreThreshold {
			t.Errorf("Detect(%q) score %f, want at least %v", tt.text, d.Score, usecase.DefaultScoreThreshold)
		}
	}
}

func TestLinguaClassifier_AmbiguousTextStaysBelowThreshold(t *testing.T) {
	c, err := NewLinguaClassifier(config.DetectorConfig{}, "en")
	if err != nil {
		t.Fatal(err)
	}

	d, err := c.Detect("ok")
	if err != nil {
		t.Fatal(err)
	}
	if d.Score >= usecase.DefaultScoreThreshold {
		t.Errorf("expected score below %v for %q, got %+v", usecase.DefaultScoreThreshold, "ok", d)
	}
}

func TestLinguaClassifier_MinRelativeDistance(t *testing.T) {
	langs := []string{"en", "de", "fr", "nl"}
	text := "Das ist ein Test."

	loose, err := NewLinguaClassifier(config.DetectorConfig{Languages: langs}, "en")
	if err != nil {
		t.Fatal(err)
	}
	d, err := loose.Detect(text)
	if err != nil {
		t.Fatal(err)
	}
	if d.Language != "de" || d.Score == 0 {
		t.Errorf("expected de with a positive score, got %+v", d)
	}

	strict, err := NewLinguaClassifier(config.DetectorConfig{Languages: langs, MinRelativeDistance: 0.99}, "en")
	if err != nil {
		t.Fatal(err)
	}
	d, err = strict.Detect(text)
	if err != nil {
		t.Fatal(err)
	}
	if d != (domain.Detection{Language: "en", Score: 0}) {
		t.Errorf("expected fallback with score 0, got %+v", d)
	}
}

func TestNewLinguaClassifier_InvalidMinRelativeDistance(t *testing.T) {
	for _, dist := range []float64{-0.1, 1} {
		if _, err := NewLinguaClassifier(config.DetectorConfig{MinRelativeDistance: dist}, "en"); err == nil {
			t.Errorf("expected error for distance %v", dist)
		}
	}
}

func TestLinguaClassifier_EmptyTextFallsBack(t *testing.T) {
	c := newTestClassifier(t)

	for _, text := range []string{"", "   ", "123 456 !!"} {
		d, err := c.Detect(text)
		if err != nil {
			t.Fatal(err)
		}
		if d != (domain.Detection{Language: "en", Score: 0}) {
			t.Errorf("Detect(%q) = %+v, want fallback with score 0", text, d)
		}
	}
}

func TestLinguaClassifier_Languages(t *testing.T) {
	c := newTestClassifier(t)

	if got := c.Languages(); !reflect.DeepEqual(got, []string{"de", "en", "fr"}) {
		t.Errorf("unexpected languages %v", got)
	}
}

func TestNewLinguaClassifier_InvalidLanguages(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
	}{
		{"unsupported code", []string{"en", "xx"}},
		{"single language", []string{"en"}},
		{"duplicate collapses to one", []string{"en", "EN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLinguaClassifier(config.DetectorConfig{Languages: tt.codes}, "en"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestClassifierLanguagesMatchDetector(t *testing.T) {
	c, err := NewLinguaClassifier(config.DetectorConfig{}, "en")
	if err != nil {
		t.Fatal(err)
	}

	expected := domain.NewLanguages(domain.ClassifierLanguages...).Sorted()
	if got := c.Languages(); !reflect.DeepEqual(got, expected) {
		t.Errorf("domain.ClassifierLanguages is out of date:\n got  %v\n want %v", got, expected)
	}
}
