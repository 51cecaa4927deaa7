package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"unitoken/internal/domain"
	"unitoken/internal/usecase"
)

// MaxBatchTexts bounds the number of texts in one batch request.
const MaxBatchTexts = 10000

// Tokenizer is the use case surface the handlers need.
type Tokenizer interface {
	Tokenize(text string, scoreThreshold float64, models usecase.Models) ([]string, domain.LanguageResult, error)
	SentTokenize(text string, scoreThreshold float64, models usecase.Models) ([][]string, domain.LanguageResult, error)
	TokenizeBatch(texts []string, models usecase.Models) ([]usecase.TokensResult, error)
	SentTokenizeBatch(texts []string, models usecase.Models) ([]usecase.SentencesResult, error)
	Allowed() domain.Languages
}

// RunRecorder persists batch results.
type RunRecorder interface {
	RecordTokens(sources []string, results []usecase.TokensResult) (domain.Run, error)
	RecordSentences(sources []string, results []usecase.SentencesResult) (domain.Run, error)
}

// RunReader reads persisted runs.
type RunReader interface {
	GetRun(id string) (domain.Run, error)
	ListRuns() ([]domain.RunSummary, error)
}

type TokenizeRequest struct {
	Text           string   `json:"text"`
	Sentences      bool     `json:"sentences"`
	ScoreThreshold *float64 `json:"score_threshold"`
}

type BatchRequest struct {
	Texts     []string `json:"texts" binding:"required"`
	Sentences bool     `json:"sentences"`
	Save      bool     `json:"save"`
}

type BatchResponse struct {
	RunID   string      `json:"run_id,omitempty"`
	Results interface{} `json:"results"`
}

type LanguagesResponse struct {
	Languages []string `json:"languages"`
}

// TokenizeHandler serves the tokenization endpoints.
type TokenizeHandler struct {
	uc               Tokenizer
	recorder         RunRecorder
	runs             RunReader
	defaultThreshold float64
}

// NewTokenizeHandler creates a handler. recorder and runs may be nil, which
// disables saving and run lookup.
func NewTokenizeHandler(uc Tokenizer, recorder RunRecorder, runs RunReader, defaultThreshold float64) *TokenizeHandler {
	return &TokenizeHandler{
		uc:               uc,
		recorder:         recorder,
		runs:             runs,
		defaultThreshold: defaultThreshold,
	}
}

// Tokenize handles POST /api/v1/tokenize
func (h *TokenizeHandler) Tokenize(c *gin.Context) {
	var req TokenizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "invalid request body")
		return
	}

	threshold := h.defaultThreshold
	if req.ScoreThreshold != nil {
		threshold = *req.ScoreThreshold
		if threshold < 0 || threshold > 1 {
			HandleInvalidRequest(c, "score_threshold must be between 0 and 1")
			return
		}
	}

	if req.Sentences {
		sents, lang, err := h.uc.SentTokenize(req.Text, threshold, nil)
		if err != nil {
			HandleDetectionError(c, err, lang)
			return
		}
		respondSuccess(c, http.StatusOK, usecase.SentencesResult{Sentences: sents, Language: lang})
		return
	}

	tokens, lang, err := h.uc.Tokenize(req.Text, threshold, nil)
	if err != nil {
		HandleDetectionError(c, err, lang)
		return
	}
	respondSuccess(c, http.StatusOK, usecase.TokensResult{Tokens: tokens, Language: lang})
}

// TokenizeBatch handles POST /api/v1/tokenize/batch
func (h *TokenizeHandler) TokenizeBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "invalid request body")
		return
	}
	if len(req.Texts) > MaxBatchTexts {
		HandleInvalidRequest(c, fmt.Sprintf("at most %d texts per batch", MaxBatchTexts))
		return
	}
	if req.Save && h.recorder == nil {
		HandleInvalidRequest(c, "run storage is disabled")
		return
	}

	var resp BatchResponse
	if req.Sentences {
		results, err := h.uc.SentTokenizeBatch(req.Texts, nil)
		if err != nil {
			HandleUsecaseError(c, err)
			return
		}
		resp.Results = results
		if req.Save {
			run, err := h.recorder.RecordSentences(nil, results)
			if err != nil {
				HandleUsecaseError(c, err)
				return
			}
			resp.RunID = run.ID
		}
	} else {
		results, err := h.uc.TokenizeBatch(req.Texts, nil)
		if err != nil {
			HandleUsecaseError(c, err)
			return
		}
		resp.Results = results
		if req.Save {
			run, err := h.recorder.RecordTokens(nil, results)
			if err != nil {
				HandleUsecaseError(c, err)
				return
			}
			resp.RunID = run.ID
		}
	}

	respondSuccess(c, http.StatusOK, resp)
}

// Languages handles GET /api/v1/languages
func (h *TokenizeHandler) Languages(c *gin.Context) {
	respondSuccess(c, http.StatusOK, LanguagesResponse{Languages: h.uc.Allowed().Sorted()})
}

// GetRun handles GET /api/v1/runs/:id
func (h *TokenizeHandler) GetRun(c *gin.Context) {
	if h.runs == nil {
		HandleInvalidRequest(c, "run storage is disabled")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		HandleInvalidRequest(c, "invalid id")
		return
	}

	run, err := h.runs.GetRun(id.String())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, run)
}

// ListRuns handles GET /api/v1/runs
func (h *TokenizeHandler) ListRuns(c *gin.Context) {
	if h.runs == nil {
		HandleInvalidRequest(c, "run storage is disabled")
		return
	}
	runs, err := h.runs.ListRuns()
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}
	if runs == nil {
		runs = []domain.RunSummary{}
	}
	respondSuccess(c, http.StatusOK, runs)
}
