package extract

import (
	"regexp"
	"strings"

	"github.com/mwalden/termlens/internal/document"
	"github.com/mwalden/termlens/internal/model"
)

// capitalizedPhraseRe matches a run of capitalized words or all-caps tokens,
// the surface shape of a defined-term usage in contract prose.
var capitalizedPhraseRe = regexp.MustCompile(
	`\b(?:[A-Z][a-z']+|[A-Z]{2,})(?:\s+(?:[A-Z][a-z']+|[A-Z]{2,}|of|and|the))*\b`)

// sentenceLeadWords are words whose capitalization says nothing about term
// status when they open a sentence or phrase.
var sentenceLeadWords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"A": true, "An": true, "If": true, "In": true, "On": true, "At": true,
	"No": true, "Any": true, "All": true, "Each": true, "Such": true,
	"Upon": true, "For": true, "Subject": true, "Except": true,
	"Notwithstanding": true, "Neither": true, "Unless": true, "To": true,
	"It": true, "As": true, "By": true, "During": true, "After": true,
	"Before": true, "Where": true, "When": true, "Whereas": true,
}

// Usages proposes usage candidates: every capitalized phrase occurrence,
// one candidate per occurrence, with its containing sentence. Phrases
// inside definition quotes are still reported; the classifier resolves
// them against the registry anyway.
func Usages(paragraphs []document.Paragraph) []model.RawUsage {
	var usages []model.RawUsage
	for _, p := range paragraphs {
		for _, sentence := range splitSentences(p.Text) {
			for _, loc := range capitalizedPhraseRe.FindAllStringIndex(sentence, -1) {
				phrase := trimPhrase(sentence[loc[0]:loc[1]])
				if phrase == "" {
					continue
				}
				// A single lead word at sentence start is sentence case,
				// not a term.
				if loc[0] == 0 && !strings.Contains(phrase, " ") && sentenceLeadWords[phrase] {
					continue
				}
				usages = append(usages, model.RawUsage{
					Token:       phrase,
					Sentence:    sentence,
					ParagraphID: p.ID,
				})
			}
		}
	}
	return usages
}

// trimPhrase drops lead/trail words that only carry sentence capitalization
// or connective glue ("of", "and", "the") off the phrase edges.
func trimPhrase(phrase string) string {
	words := strings.Fields(phrase)
	for len(words) > 0 && sentenceLeadWords[words[0]] {
		words = words[1:]
	}
	for len(words) > 0 && isConnective(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func isConnective(word string) bool {
	switch word {
	case "of", "and", "the":
		return true
	}
	return false
}
