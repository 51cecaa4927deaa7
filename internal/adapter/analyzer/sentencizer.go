package analyzer

import (
	"github.com/rivo/uniseg"
	"unitoken/internal/domain"
)

// Sentencizer groups tokens into sentences using UAX #29 sentence boundaries.
type Sentencizer struct{}

// NewSentencizer creates a new Sentencizer.
func NewSentencizer() *Sentencizer {
	return &Sentencizer{}
}

// Segment partitions tokens into sentence spans. A token belongs to the
// sentence its first byte falls in. Sentences without tokens are dropped.
func (s *Sentencizer) Segment(text string, tokens []domain.Token) []domain.Span {
	spans := make([]domain.Span, 0, 1)

	i := 0
	state := -1
	end := 0
	rest := text
	for len(rest) > 0 && i < len(tokens) {
		var sentence string
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		end += len(sentence)

		start := i
		for i < len(tokens) && tokens[i].Start < end {
			i++
		}
		if i > start {
			spans = append(spans, domain.Span{Start: start, End: i})
		}
	}

	return spans
}
