// Package llm is the model-backed candidate generator. A provider only
// proposes RawDefinition/RawUsage/Suggestion/CrossReference candidates from
// document text; every consistency decision is made downstream by the
// deterministic engine, so a different model (or no model at all) never
// changes reconciliation semantics.
package llm

import (
	"context"

	"github.com/mwalden/termlens/internal/model"
)

// Provider generates candidate lists from contract text.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// ExtractDefinitions proposes definition candidates, including inline
	// parentheticals and dedicated definition clauses.
	ExtractDefinitions(ctx context.Context, text string) ([]model.RawDefinition, error)

	// FindUsages proposes usages of known terms plus undefined capitalized
	// terms.
	FindUsages(ctx context.Context, text string, knownTerms []string) ([]model.RawUsage, error)

	// FindSuggestions proposes terms that should be formally defined.
	FindSuggestions(ctx context.Context, text string, knownTerms []string) ([]model.Suggestion, error)

	// FindCrossReferences proposes references to sections, exhibits,
	// schedules and similar.
	FindCrossReferences(ctx context.Context, text string) ([]model.CrossReference, error)

	// IsAvailable checks that the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Wire types for provider JSON responses. Field names follow the response
// schema the prompts request, which differs from the engine's snake_case
// contract.

type wireDefinition struct {
	TermRaw       string `json:"term_raw"`
	TermCanonical string `json:"term_canonical"`
	DefText       string `json:"def_text"`
	ParagraphID   string `json:"paragraphId"`
	IsInline      bool   `json:"is_inline"`
}

type wireUsage struct {
	Token       string `json:"token"`
	Sentence    string `json:"sentence"`
	ParagraphID string `json:"paragraphId"`
}

type wireSuggestion struct {
	Term        string `json:"term"`
	ParagraphID string `json:"paragraphId"`
	Sentence    string `json:"sentence"`
	Reasoning   string `json:"reasoning"`
}

type wireCrossReference struct {
	Token       string `json:"token"`
	Sentence    string `json:"sentence"`
	ParagraphID string `json:"paragraphId"`
}

type definitionsResponse struct {
	Definitions []wireDefinition `json:"definitions"`
}

type usagesResponse struct {
	Usages []wireUsage `json:"usages"`
}

type suggestionsResponse struct {
	Suggestions []wireSuggestion `json:"suggestions"`
}

type referencesResponse struct {
	References []wireCrossReference `json:"references"`
}

func (r *definitionsResponse) toModel() []model.RawDefinition {
	defs := make([]model.RawDefinition, 0, len(r.Definitions))
	for _, d := range r.Definitions {
		defs = append(defs, model.RawDefinition{
			TermRaw:       d.TermRaw,
			TermCanonical: d.TermCanonical,
			DefText:       d.DefText,
			ParagraphID:   d.ParagraphID,
			IsInline:      d.IsInline,
		})
	}
	return defs
}

func (r *usagesResponse) toModel() []model.RawUsage {
	usages := make([]model.RawUsage, 0, len(r.Usages))
	for _, u := range r.Usages {
		usages = append(usages, model.RawUsage{
			Token:       u.Token,
			Sentence:    u.Sentence,
			ParagraphID: u.ParagraphID,
		})
	}
	return usages
}

func (r *suggestionsResponse) toModel() []model.Suggestion {
	suggestions := make([]model.Suggestion, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		suggestions = append(suggestions, model.Suggestion{
			Term:        s.Term,
			ParagraphID: s.ParagraphID,
			Sentence:    s.Sentence,
			Reasoning:   s.Reasoning,
		})
	}
	return suggestions
}

func (r *referencesResponse) toModel() []model.CrossReference {
	refs := make([]model.CrossReference, 0, len(r.References))
	for _, ref := range r.References {
		refs = append(refs, model.CrossReference{
			Token:       ref.Token,
			Sentence:    ref.Sentence,
			ParagraphID: ref.ParagraphID,
		})
	}
	return refs
}
