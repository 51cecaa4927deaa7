package usecase

import "unitoken/internal/domain"

// itemDoc is the per-item outcome of a pipeline call: a document, or the
// zero value when no pipeline could serve the item.
type itemDoc struct {
	doc      domain.Document
	resolved bool
}

func resolved(doc domain.Document) itemDoc {
	return itemDoc{doc: doc, resolved: true}
}

// unpackTokens yields [] for unresolved items.
func unpackTokens(d itemDoc) []string {
	if !d.resolved {
		return []string{}
	}
	return d.doc.Words()
}

// unpackSentences yields [[]] for unresolved items.
func unpackSentences(d itemDoc) [][]string {
	if !d.resolved {
		return [][]string{{}}
	}
	return d.doc.SentenceWords()
}

// languageGroup holds the input positions of one language, in input order.
type languageGroup struct {
	language string
	indices  []int
}

// groupByLanguage partitions valid items by language. Groups are ordered by
// first appearance.
func groupByLanguage(results []domain.LanguageResult) []languageGroup {
	var groups []languageGroup
	pos := make(map[string]int)

	for i, r := range results {
		if !r.Valid {
			continue
		}
		g, ok := pos[r.Language]
		if !ok {
			g = len(groups)
			pos[r.Language] = g
			groups = append(groups, languageGroup{language: r.Language})
		}
		groups[g].indices = append(groups[g].indices, i)
	}

	return groups
}
