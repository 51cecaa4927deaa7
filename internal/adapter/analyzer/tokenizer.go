package analyzer

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"unitoken/internal/domain"
)

// Tokenizer splits text into tokens on Unicode word boundaries.
// Whitespace is dropped; punctuation becomes its own token.
type Tokenizer struct{}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits text into tokens with byte offsets into text.
func (t *Tokenizer) Tokenize(text string) []domain.Token {
	return splitWords(text)
}

// CountTokens returns the number of tokens in text without materializing them.
func (t *Tokenizer) CountTokens(text string) int {
	n := 0
	state := -1
	for len(text) > 0 {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		if !isBlank(word) {
			n++
		}
	}
	return n
}

// splitWords splits text using UAX #29 word boundaries.
func splitWords(text string) []domain.Token {
	var tokens []domain.Token

	state := -1
	offset := 0
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		start := offset
		offset += len(word)
		if isBlank(word) {
			continue
		}
		tokens = append(tokens, domain.Token{Text: word, Start: start, End: offset})
	}

	return tokens
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) == ""
}
