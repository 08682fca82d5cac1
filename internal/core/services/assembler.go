package services

import (
	"sort"
	"strings"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

// excerptLength is how much of a passage a citation carries.
const excerptLength = 200

// assembleContext turns ranked retrieval results into the grounding
// context handed to the generator: passage text grouped under document
// headers, with one citation per passage. Documents appear in the
// order they first rank; passages within a document follow ingestion
// order.
func assembleContext(results []domain.RetrievalResult) domain.GroundingContext {
	if len(results) == 0 {
		return domain.GroundingContext{Grounded: false}
	}

	// Group by document, preserving rank order of first appearance.
	var order []string
	grouped := make(map[string][]domain.RetrievalResult)
	titles := make(map[string]string)
	for _, result := range results {
		if _, seen := grouped[result.DocumentID]; !seen {
			order = append(order, result.DocumentID)
			titles[result.DocumentID] = result.DocumentTitle
		}
		grouped[result.DocumentID] = append(grouped[result.DocumentID], result)
	}

	var b strings.Builder
	var citations []domain.Citation

	for i, docID := range order {
		group := grouped[docID]
		sort.SliceStable(group, func(x, y int) bool {
			return group[x].Passage.Position < group[y].Passage.Position
		})

		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Document: ")
		b.WriteString(titles[docID])

		for _, result := range group {
			b.WriteString("\n")
			b.WriteString(result.Passage.Text)

			citations = append(citations, domain.Citation{
				Source:  titles[docID],
				Excerpt: excerpt(result.Passage.Text),
				Page:    result.Passage.Metadata.Page,
			})
		}
	}

	return domain.GroundingContext{
		Text:      b.String(),
		Citations: citations,
		Grounded:  true,
	}
}

// excerpt returns the first excerptLength characters of text, cut on a
// rune boundary.
func excerpt(text string) string {
	if len(text) <= excerptLength {
		return text
	}
	cut := excerptLength
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
