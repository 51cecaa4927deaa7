package port

import "unitoken/internal/domain"

// Pipeline turns text into tokenized documents for one language.
type Pipeline interface {
	// Language returns the language code the pipeline was built for.
	Language() string

	// Process tokenizes a single text.
	Process(text string) (domain.Document, error)

	// Pipe tokenizes texts in one call. The result has one document per
	// text, in the same order.
	Pipe(texts []string) ([]domain.Document, error)

	// SupportsSentenceSegmentation reports whether produced documents
	// carry sentence spans.
	SupportsSentenceSegmentation() bool
}

// LanguageClassifier detects the language of a text.
type LanguageClassifier interface {
	Detect(text string) (domain.Detection, error)
}
