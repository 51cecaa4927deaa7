package domain

import "time"

// Detection is the raw output of a language classifier.
type Detection struct {
	Language string
	Score    float64
}

// LanguageResult is the detection attached to every tokenization result.
// Valid is false only for batch items whose language could not be served.
type LanguageResult struct {
	Score    float64 `json:"score"`
	Language string  `json:"language"`
	Valid    bool    `json:"valid"`
}

// NewLanguageResult creates a valid LanguageResult.
func NewLanguageResult(language string, score float64) LanguageResult {
	return LanguageResult{
		Score:    score,
		Language: language,
		Valid:    true,
	}
}

// Token is a single token with its byte offsets in the processed text.
type Token struct {
	Text  string
	Start int
	End   int
}

// Span is a sentence expressed as the half-open token index range [Start, End).
type Span struct {
	Start int
	End   int
}

// Document is the output of a pipeline for one text.
type Document struct {
	Text      string
	Tokens    []Token
	Sentences []Span // nil when the pipeline does not segment sentences
}

// Words returns the surface forms of all tokens in order.
func (d Document) Words() []string {
	words := make([]string, len(d.Tokens))
	for i, tok := range d.Tokens {
		words[i] = tok.Text
	}
	return words
}

// SentenceWords returns the surface forms grouped by sentence span.
func (d Document) SentenceWords() [][]string {
	sents := make([][]string, 0, len(d.Sentences))
	for _, span := range d.Sentences {
		words := make([]string, 0, span.End-span.Start)
		for _, tok := range d.Tokens[span.Start:span.End] {
			words = append(words, tok.Text)
		}
		sents = append(sents, words)
	}
	return sents
}

// Run is a persisted batch invocation.
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Sentences bool      `json:"sentences"`
	Items     []RunItem `json:"items"`
}

// RunItem is one input of a Run. Exactly one of Tokens or SentenceTokens is set,
// depending on Run.Sentences; the other stays nil. An item that could not be
// tokenized keeps its empty result, [] or [[]].
type RunItem struct {
	Source         string         `json:"source,omitempty"`
	Tokens         []string       `json:"tokens"`
	SentenceTokens [][]string     `json:"sentence_tokens"`
	Language       LanguageResult `json:"language"`
}

// RunSummary is the listing form of a Run.
type RunSummary struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Sentences bool           `json:"sentences"`
	Items     int            `json:"items"`
	Invalid   int            `json:"invalid"`
	Languages map[string]int `json:"languages"`
}

// Summary computes the listing form of the run.
func (r Run) Summary() RunSummary {
	s := RunSummary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Sentences: r.Sentences,
		Items:     len(r.Items),
		Languages: make(map[string]int),
	}
	for _, item := range r.Items {
		if !item.Language.Valid {
			s.Invalid++
		}
		s.Languages[item.Language.Language]++
	}
	return s
}
