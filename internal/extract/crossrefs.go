package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mwalden/termlens/internal/canon"
	"github.com/mwalden/termlens/internal/document"
	"github.com/mwalden/termlens/internal/model"
)

// crossRefRe matches references to numbered document structure:
// "Section 4.2", "Article IX", "Exhibit A", "Schedule 1.1(b)".
var crossRefRe = regexp.MustCompile(
	`\b(?:Section|Article|Exhibit|Schedule|Annex|Appendix|Clause)\s+[0-9IVXA-Z][0-9A-Za-z.()\-]*`)

// CrossReferences proposes structural references. They are pass-through
// entities: the engine counts them but never reconciles them.
func CrossReferences(paragraphs []document.Paragraph) []model.CrossReference {
	var refs []model.CrossReference
	for _, p := range paragraphs {
		for _, sentence := range splitSentences(p.Text) {
			for _, token := range crossRefRe.FindAllString(sentence, -1) {
				refs = append(refs, model.CrossReference{
					Token:       strings.TrimRight(token, ".,;"),
					Sentence:    sentence,
					ParagraphID: p.ID,
				})
			}
		}
	}
	return refs
}

// Suggestions proposes definition-worthy terms: capitalized phrases that
// recur at least minOccurrences times without ever being defined. The first
// occurrence anchors the suggestion.
func Suggestions(paragraphs []document.Paragraph, defs []model.RawDefinition,
	c *canon.Canonicalizer, minOccurrences int) []model.Suggestion {

	if minOccurrences <= 0 {
		minOccurrences = 3
	}
	defined := make(map[string]bool, len(defs))
	for _, d := range defs {
		defined[c.Canonicalize(d.TermRaw)] = true
	}

	type sighting struct {
		token    string
		sentence string
		par      string
		count    int
		order    int
	}
	seen := make(map[string]*sighting)
	order := 0
	for _, u := range Usages(paragraphs) {
		key := c.Canonicalize(u.Token)
		if key == "" || defined[key] || c.IsAcronym(u.Token) {
			continue
		}
		// Multi-word phrases only; single capitalized words are too noisy
		// to suggest from shape alone.
		if !strings.Contains(u.Token, " ") {
			continue
		}
		if s, ok := seen[key]; ok {
			s.count++
			continue
		}
		seen[key] = &sighting{token: u.Token, sentence: u.Sentence, par: u.ParagraphID, count: 1, order: order}
		order++
	}

	var all []*sighting
	for _, s := range seen {
		if s.count >= minOccurrences {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].order < all[j].order })

	suggestions := make([]model.Suggestion, 0, len(all))
	for _, s := range all {
		suggestions = append(suggestions, model.Suggestion{
			Term:        s.token,
			ParagraphID: s.par,
			Sentence:    s.sentence,
			Reasoning:   fmt.Sprintf("capitalized term recurs %d times without a definition", s.count),
		})
	}
	return suggestions
}
