package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// TemplateLanguages lists the languages that have a built-in template pipeline.
var TemplateLanguages = []string{
	"af", "am", "ar", "az", "bg", "bn", "ca", "cs", "da", "de",
	"dsb", "el", "en", "es", "et", "eu", "fa", "fi", "fr", "ga",
	"grc", "gu", "he", "hi", "hr", "hsb", "hu", "hy", "id", "is",
	"it", "ja", "kn", "ko", "ky", "la", "lb", "lg", "lij", "lt",
	"lv", "mk", "ml", "mr", "nb", "ne", "nl", "pl", "pt", "ro",
	"ru", "sa", "si", "sk", "sl", "sq", "sr", "sv", "ta", "te",
	"th", "ti", "tl", "tn", "tr", "tt", "uk", "ur", "vi", "yo",
	"zh",
}

// ClassifierLanguages lists the ISO 639-1 codes the bundled classifier can emit.
var ClassifierLanguages = []string{
	"af", "ar", "az", "be", "bg", "bn", "bs", "ca", "cs", "cy",
	"da", "de", "el", "en", "eo", "es", "et", "eu", "fa", "fi",
	"fr", "ga", "gu", "he", "hi", "hr", "hu", "hy", "id", "is",
	"it", "ja", "ka", "kk", "ko", "la", "lg", "lt", "lv", "mi",
	"mk", "mn", "mr", "ms", "nb", "nl", "nn", "pa", "pl", "pt",
	"ro", "ru", "sk", "sl", "sn", "so", "sq", "sr", "st", "sv",
	"sw", "ta", "te", "th", "tl", "tn", "tr", "ts", "uk", "ur",
	"vi", "xh", "yo", "zh", "zu",
}

var allowed = NewLanguages(TemplateLanguages...).Intersect(NewLanguages(ClassifierLanguages...))

// AllowedLanguages returns the languages usable without a caller-supplied pipeline.
func AllowedLanguages() Languages {
	return allowed.Clone()
}

// Languages is a set of language codes.
type Languages map[string]struct{}

// NewLanguages builds a set from codes.
func NewLanguages(codes ...string) Languages {
	s := make(Languages, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s Languages) Has(code string) bool {
	_, ok := s[code]
	return ok
}

func (s Languages) Clone() Languages {
	out := make(Languages, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// Intersect returns the codes present in both sets.
func (s Languages) Intersect(other Languages) Languages {
	out := make(Languages)
	for c := range s {
		if other.Has(c) {
			out[c] = struct{}{}
		}
	}
	return out
}

// With returns a copy of the set extended with codes.
func (s Languages) With(codes ...string) Languages {
	out := s.Clone()
	for _, c := range codes {
		out[c] = struct{}{}
	}
	return out
}

func (s Languages) Sorted() []string {
	codes := make([]string, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// NormalizeCode maps a language tag such as "EN" or "pt-BR" to its base code.
// Codes are not canonicalized, so "tl" stays "tl". Undetermined tags yield "".
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Raw.Parse(code)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf != language.Exact {
		return ""
	}
	return base.String()
}
