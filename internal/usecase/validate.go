package usecase

import (
	"fmt"
	"reflect"
	"sort"

	"unitoken/internal/domain"
	"unitoken/internal/port"
)

// Models maps language codes to caller-supplied pipelines. Supplied pipelines
// take precedence over templates and bypass the allowed-language set.
type Models map[string]port.Pipeline

// Languages returns the codes that have a supplied pipeline.
func (m Models) Languages() []string {
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// ValidatePredefined checks supplied pipelines before any text is processed.
// A nil map yields an empty one. Languages are checked in sorted order, so the
// error names the first offender.
func ValidatePredefined(models Models, needsSentence bool) (Models, error) {
	if models == nil {
		return Models{}, nil
	}
	for _, lang := range models.Languages() {
		p := models[lang]
		if isNilPipeline(p) {
			return nil, fmt.Errorf("%w: the supplied pipeline for %q is nil", ErrInvalidModel, lang)
		}
		if needsSentence && !p.SupportsSentenceSegmentation() {
			return nil, fmt.Errorf("%w: the supplied pipeline for %q has no sentencizer", ErrMissingCapability, lang)
		}
	}
	return models, nil
}

// ValidateDetection gates a single-item detection on score and language.
func ValidateDetection(result domain.LanguageResult, threshold float64, allowed domain.Languages) error {
	if result.Score < threshold {
		return fmt.Errorf("%w: score %.4f, threshold %.4f", ErrBelowThreshold, result.Score, threshold)
	}
	if !allowed.Has(result.Language) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, result.Language)
	}
	return nil
}

// isNilPipeline also catches typed nil pointers stored in the interface.
func isNilPipeline(p port.Pipeline) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
