package llm

import (
	"fmt"
	"strings"

	"github.com/mwalden/termlens/internal/document"
)

const (
	definitionsSystemPrompt = `You are an expert at extracting definitions from legal contracts. Extract all definitions including inline parenthetical definitions and dedicated definition clauses. Every paragraph of the input is prefixed with its id in square brackets; report that id as paragraphId. Return a JSON object with a "definitions" array of {term_raw, term_canonical, def_text, paragraphId, is_inline}.`

	usagesSystemPrompt = `You are an expert at finding term usages in legal contracts. Find all usages of defined terms and identify undefined capitalized terms. Every paragraph of the input is prefixed with its id in square brackets; report that id as paragraphId. Return a JSON object with a "usages" array of {token, sentence, paragraphId}.`

	suggestionsSystemPrompt = `You are an expert at identifying terms in legal contracts that should be formally defined. Every paragraph of the input is prefixed with its id in square brackets; report that id as paragraphId. Return a JSON object with a "suggestions" array of {term, paragraphId, sentence, reasoning}.`

	referencesSystemPrompt = `You are an expert at finding cross-references in legal contracts. Find references to sections, exhibits, schedules, and similar structure. Every paragraph of the input is prefixed with its id in square brackets; report that id as paragraphId. Return a JSON object with a "references" array of {token, sentence, paragraphId}.`
)

// RenderParagraphs formats paragraphs for a prompt, one `[id] text` block
// per paragraph, so the model can echo stable paragraph ids back.
func RenderParagraphs(paragraphs []document.Paragraph) string {
	var b strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&b, "[%s] %s\n\n", p.ID, p.Text)
	}
	return b.String()
}

func definitionsUserPrompt(text string) string {
	return "Extract all definitions from this contract text:\n\n" + text
}

func usagesUserPrompt(text string, knownTerms []string) string {
	return fmt.Sprintf("Known terms: %s\n\nFind all term usages in this text:\n\n%s",
		renderTermList(knownTerms), text)
}

func suggestionsUserPrompt(text string, knownTerms []string) string {
	return fmt.Sprintf("Known defined terms: %s\n\nFind terms that should be defined in this text:\n\n%s",
		renderTermList(knownTerms), text)
}

func referencesUserPrompt(text string) string {
	return "Find all cross-references in this text:\n\n" + text
}

func renderTermList(terms []string) string {
	if len(terms) == 0 {
		return "[]"
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
