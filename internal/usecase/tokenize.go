package usecase

import (
	"fmt"

	"go.uber.org/zap"
	"unitoken/internal/domain"
	"unitoken/internal/logger"
	"unitoken/internal/port"
)

// DefaultScoreThreshold is the minimum detection score for single-item calls.
const DefaultScoreThreshold = 0.9

// TokensResult is the token-level result for one text.
type TokensResult struct {
	Tokens   []string              `json:"tokens"`
	Language domain.LanguageResult `json:"language"`
}

// SentencesResult is the sentence-level result for one text.
type SentencesResult struct {
	Sentences [][]string            `json:"sentences"`
	Language  domain.LanguageResult `json:"language"`
}

// TokenizeUseCase detects languages and dispatches texts to per-language pipelines.
type TokenizeUseCase struct {
	classifier     port.LanguageClassifier
	resolver       *ModelResolver
	allowed        domain.Languages
	batchThreshold float64 // Batch items below this score are marked invalid (0 = disabled)
	log            *zap.Logger
}

// NewTokenizeUseCase creates a new tokenize use case.
func NewTokenizeUseCase(
	classifier port.LanguageClassifier,
	resolver *ModelResolver,
	batchThreshold float64,
	log *zap.Logger,
) *TokenizeUseCase {
	return &TokenizeUseCase{
		classifier:     classifier,
		resolver:       resolver,
		allowed:        domain.AllowedLanguages(),
		batchThreshold: batchThreshold,
		log:            logger.OrNop(log),
	}
}

// Allowed returns the languages accepted by single-item calls without a supplied model.
func (u *TokenizeUseCase) Allowed() domain.Languages {
	return u.allowed.Clone()
}

// CachedLanguages returns the languages whose template pipeline has been built.
func (u *TokenizeUseCase) CachedLanguages() []string {
	return u.resolver.Cached()
}

// Tokenize splits text into tokens using the pipeline for its detected language.
// The detection is returned alongside validation errors.
func (u *TokenizeUseCase) Tokenize(text string, scoreThreshold float64, models Models) ([]string, domain.LanguageResult, error) {
	models, err := ValidatePredefined(models, false)
	if err != nil {
		return nil, domain.LanguageResult{}, err
	}

	doc, result, err := u.process(text, scoreThreshold, models)
	if err != nil {
		return nil, result, err
	}
	return unpackTokens(doc), result, nil
}

// SentTokenize splits text into sentences of tokens.
func (u *TokenizeUseCase) SentTokenize(text string, scoreThreshold float64, models Models) ([][]string, domain.LanguageResult, error) {
	models, err := ValidatePredefined(models, true)
	if err != nil {
		return nil, domain.LanguageResult{}, err
	}

	doc, result, err := u.process(text, scoreThreshold, models)
	if err != nil {
		return nil, result, err
	}
	return unpackSentences(doc), result, nil
}

// TokenizeBatch tokenizes texts, calling each language's pipeline once.
// Items whose language cannot be served are returned empty and invalid.
func (u *TokenizeUseCase) TokenizeBatch(texts []string, models Models) ([]TokensResult, error) {
	models, err := ValidatePredefined(models, false)
	if err != nil {
		return nil, err
	}

	docs, results, err := u.processBatch(texts, models)
	if err != nil {
		return nil, err
	}

	out := make([]TokensResult, len(texts))
	for i := range texts {
		out[i] = TokensResult{Tokens: unpackTokens(docs[i]), Language: results[i]}
	}
	return out, nil
}

// SentTokenizeBatch is the sentence-level variant of TokenizeBatch.
func (u *TokenizeUseCase) SentTokenizeBatch(texts []string, models Models) ([]SentencesResult, error) {
	models, err := ValidatePredefined(models, true)
	if err != nil {
		return nil, err
	}

	docs, results, err := u.processBatch(texts, models)
	if err != nil {
		return nil, err
	}

	out := make([]SentencesResult, len(texts))
	for i := range texts {
		out[i] = SentencesResult{Sentences: unpackSentences(docs[i]), Language: results[i]}
	}
	return out, nil
}

func (u *TokenizeUseCase) detect(text string) (domain.LanguageResult, error) {
	d, err := u.classifier.Detect(text)
	if err != nil {
		return domain.LanguageResult{}, err
	}
	return domain.NewLanguageResult(d.Language, d.Score), nil
}

func (u *TokenizeUseCase) process(text string, threshold float64, models Models) (itemDoc, domain.LanguageResult, error) {
	result, err := u.detect(text)
	if err != nil {
		return itemDoc{}, domain.LanguageResult{}, err
	}

	if err := ValidateDetection(result, threshold, u.allowed.With(models.Languages()...)); err != nil {
		return itemDoc{}, result, err
	}

	p, err := u.resolver.Resolve(result.Language, models)
	if err != nil {
		return itemDoc{}, result, err
	}

	doc, err := p.Process(text)
	if err != nil {
		return itemDoc{}, result, err
	}
	return resolved(doc), result, nil
}

func (u *TokenizeUseCase) processBatch(texts []string, models Models) ([]itemDoc, []domain.LanguageResult, error) {
	results := make([]domain.LanguageResult, len(texts))
	for i, text := range texts {
		r, err := u.detect(text)
		if err != nil {
			return nil, nil, err
		}
		if u.batchThreshold > 0 && r.Score < u.batchThreshold {
			r.Valid = false
		}
		results[i] = r
	}

	docs := make([]itemDoc, len(texts))
	for _, g := range groupByLanguage(results) {
		p, err := u.resolver.Resolve(g.language, models)
		if err != nil {
			u.log.Warn("no pipeline for batch language",
				zap.String("language", g.language),
				zap.Int("items", len(g.indices)),
				zap.Error(err))
			for _, idx := range g.indices {
				results[idx].Valid = false
			}
			continue
		}

		groupTexts := make([]string, len(g.indices))
		for j, idx := range g.indices {
			groupTexts[j] = texts[idx]
		}

		groupDocs, err := p.Pipe(groupTexts)
		if err != nil {
			return nil, nil, err
		}
		if len(groupDocs) != len(groupTexts) {
			return nil, nil, fmt.Errorf("pipeline for %q returned %d documents for %d texts", g.language, len(groupDocs), len(groupTexts))
		}

		// Scatter back to input positions.
		for j, idx := range g.indices {
			docs[idx] = resolved(groupDocs[j])
		}
	}

	u.log.Debug("batch tokenized", zap.Int("items", len(texts)))
	return docs, results, nil
}
