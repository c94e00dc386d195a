package extract

import (
	"regexp"
	"strings"

	"github.com/mwalden/termlens/internal/document"
	"github.com/mwalden/termlens/internal/model"
)

var (
	// Dedicated definition clause: `"Agreement" means ...`,
	// `"Business Day" shall mean ...`, `"Affiliate" has the meaning ...`.
	dedicatedDefRe = regexp.MustCompile(
		`[“"]([^”"]+)[”"]\s+(?:shall\s+mean|means|shall\s+have\s+the\s+meaning|has\s+the\s+meaning|refers\s+to)\s*(.+)`)

	// Inline parenthetical definition: `(the "Purchaser")`,
	// `(each a "Party", together the "Parties")`, `("Closing")`.
	inlineDefRe = regexp.MustCompile(
		`\((?:the\s+|each(?:,)?\s+a[n]?\s+|a[n]?\s+|collectively(?:,)?\s+the\s+|together(?:,)?\s+the\s+)?[“"]([^”"]+)[”"]`)
)

// Definitions proposes definition candidates from the paragraph text.
// Dedicated clauses win over parentheticals within the same sentence: a
// `"Term" means ...` sentence is not additionally reported as an inline
// definition of the same term.
func Definitions(paragraphs []document.Paragraph) []model.RawDefinition {
	var defs []model.RawDefinition
	for _, p := range paragraphs {
		for _, sentence := range splitSentences(p.Text) {
			dedicated := make(map[string]bool)

			if m := dedicatedDefRe.FindStringSubmatch(sentence); m != nil {
				term := strings.TrimSpace(m[1])
				defs = append(defs, model.RawDefinition{
					TermRaw:     term,
					DefText:     strings.TrimSpace(m[2]),
					ParagraphID: p.ID,
					IsInline:    false,
				})
				dedicated[term] = true
			}

			for _, m := range inlineDefRe.FindAllStringSubmatch(sentence, -1) {
				term := strings.TrimSpace(m[1])
				if term == "" || dedicated[term] {
					continue
				}
				defs = append(defs, model.RawDefinition{
					TermRaw:     term,
					DefText:     sentence,
					ParagraphID: p.ID,
					IsInline:    true,
				})
			}
		}
	}
	return defs
}
