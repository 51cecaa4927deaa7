package langdetect

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
	"unitoken/config"
	"unitoken/internal/domain"
)

// LinguaClassifier detects languages with lingua-go and reports ISO 639-1 codes.
type LinguaClassifier struct {
	detector    lingua.LanguageDetector
	languages   []string
	fallback    string
	minDistance float64
}

// NewLinguaClassifier builds a detector for the configured languages (all when empty).
// fallback is reported, with score 0, for text no language can be assigned to.
func NewLinguaClassifier(cfg config.DetectorConfig, fallback string) (*LinguaClassifier, error) {
	langs, err := resolveLanguages(cfg.Languages)
	if err != nil {
		return nil, err
	}

	if cfg.MinRelativeDistance < 0 || cfg.MinRelativeDistance > 0.99 {
		return nil, fmt.Errorf("min relative distance must be between 0 and 0.99, got %v", cfg.MinRelativeDistance)
	}

	builder := lingua.NewLanguageDetectorBuilder().FromLanguages(langs...)
	if cfg.Preload {
		builder = builder.WithPreloadedLanguageModels()
	}
	if cfg.LowAccuracy {
		builder = builder.WithLowAccuracyMode()
	}

	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, isoCode(l))
	}
	sort.Strings(codes)

	return &LinguaClassifier{
		detector:    builder.Build(),
		languages:   codes,
		fallback:    fallback,
		minDistance: cfg.MinRelativeDistance,
	}, nil
}

// Detect returns the most likely language and its confidence.
//
// lingua averages n-gram log probabilities per unigram, so its relative values
// stay flat even for clear text. The score raises them back to the letter count
// of the sample before renormalizing, which makes it a posterior over the whole
// text. Text whose top two raw values are closer than the configured minimum
// relative distance is reported as the fallback with score 0, the same rule
// lingua's DetectLanguageOf applies.
func (c *LinguaClassifier) Detect(text string) (domain.Detection, error) {
	sample := strings.TrimSpace(text)
	undetermined := domain.Detection{Language: c.fallback, Score: 0}
	if sample == "" {
		return undetermined, nil
	}

	values := c.detector.ComputeLanguageConfidenceValues(sample)
	if len(values) == 0 || values[0].Value() <= 0 || values[0].Language() == lingua.Unknown {
		return undetermined, nil
	}

	top := values[0]
	if len(values) > 1 {
		runnerUp := values[1].Value()
		if top.Value() == runnerUp || top.Value()-runnerUp < c.minDistance {
			return undetermined, nil
		}
	}

	return domain.Detection{
		Language: isoCode(top.Language()),
		Score:    sharpen(values, letterCount(sample)),
	}, nil
}

// sharpen returns the share of values[0] once every value is raised to the
// power k. It works in log space since k can be in the thousands.
func sharpen(values []lingua.ConfidenceValue, k int) float64 {
	if k < 1 {
		k = 1
	}
	top := math.Log(values[0].Value())
	sum := 0.0
	for _, v := range values {
		if v.Value() <= 0 {
			continue
		}
		sum += math.Exp(float64(k) * (math.Log(v.Value()) - top))
	}
	return 1 / sum
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// Languages returns the codes the classifier can emit, sorted.
func (c *LinguaClassifier) Languages() []string {
	return append([]string(nil), c.languages...)
}

func isoCode(l lingua.Language) string {
	return strings.ToLower(l.IsoCode639_1().String())
}

func resolveLanguages(codes []string) ([]lingua.Language, error) {
	all := lingua.AllLanguages()
	if len(codes) == 0 {
		return all, nil
	}

	byCode := make(map[string]lingua.Language, len(all))
	for _, l := range all {
		byCode[isoCode(l)] = l
	}

	seen := make(map[string]bool, len(codes))
	langs := make([]lingua.Language, 0, len(codes))
	for _, raw := range codes {
		code := domain.NormalizeCode(raw)
		l, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("detector does not support language %q", raw)
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		langs = append(langs, l)
	}

	if len(langs) < 2 {
		return nil, fmt.Errorf("detector needs at least two languages, got %d", len(langs))
	}
	return langs, nil
}
