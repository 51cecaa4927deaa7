package analyzer

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"
	"unitoken/internal/domain"
)

// ErrNoTemplate is returned when a blank pipeline is requested for a
// language without a built-in template.
var ErrNoTemplate = errors.New("no template pipeline for language")

var templates = domain.NewLanguages(domain.TemplateLanguages...)

// HasTemplate reports whether a blank pipeline can be built for lang.
func HasTemplate(lang string) bool {
	return templates.Has(lang)
}

// Pipeline is a rule-based tokenizer pipeline: NFC normalization, word
// segmentation and, optionally, sentence segmentation.
type Pipeline struct {
	lang        string
	tokenizer   *Tokenizer
	sentencizer *Sentencizer
}

// NewPipeline creates a pipeline for lang without a sentencizer. The language
// is not checked against the template list, so callers can build override
// pipelines for any code.
func NewPipeline(lang string) *Pipeline {
	return &Pipeline{
		lang:      lang,
		tokenizer: NewTokenizer(),
	}
}

// NewBlankPipeline creates the template pipeline for lang, sentencizer included.
func NewBlankPipeline(lang string) (*Pipeline, error) {
	if !HasTemplate(lang) {
		return nil, fmt.Errorf("%w: %q", ErrNoTemplate, lang)
	}
	return NewPipeline(lang).AddSentencizer(), nil
}

// AddSentencizer enables sentence segmentation and returns the pipeline.
func (p *Pipeline) AddSentencizer() *Pipeline {
	p.sentencizer = NewSentencizer()
	return p
}

func (p *Pipeline) Language() string {
	return p.lang
}

func (p *Pipeline) SupportsSentenceSegmentation() bool {
	return p.sentencizer != nil
}

// Process tokenizes a single text.
func (p *Pipeline) Process(text string) (domain.Document, error) {
	text = norm.NFC.String(text)
	doc := domain.Document{
		Text:   text,
		Tokens: p.tokenizer.Tokenize(text),
	}
	if p.sentencizer != nil {
		doc.Sentences = p.sentencizer.Segment(text, doc.Tokens)
	}
	return doc, nil
}

// Pipe tokenizes texts in order.
func (p *Pipeline) Pipe(texts []string) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(texts))
	for _, text := range texts {
		doc, err := p.Process(text)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
