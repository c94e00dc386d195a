package aggregate

import (
	"testing"

	"github.com/mwalden/termlens/internal/model"
)

func TestBuild_SummaryCounts(t *testing.T) {
	defs := []*model.Definition{
		{TermRaw: "Agreement", TermCanonical: "agreement", ParagraphID: "p-1",
			Issues: []model.IssueType{model.IssueDuplicate, model.IssueConflict}},
		{TermRaw: "Agreement", TermCanonical: "agreement", ParagraphID: "p-3",
			Issues: []model.IssueType{model.IssueDuplicate, model.IssueConflict}},
		{TermRaw: "Affiliate", TermCanonical: "affiliate", ParagraphID: "p-4",
			Issues: []model.IssueType{model.IssueUnusedTerm}},
	}
	usages := []model.Usage{
		{Token: "Agreement", Canonical: "agreement", Classification: model.ClassificationDefined,
			Issues: []model.IssueType{model.IssueUseBeforeDefine}},
		{Token: "Escrow Amount", Canonical: "escrow amount", Classification: model.ClassificationUndefined,
			Issues: []model.IssueType{model.IssueMissingDefinition}},
		{Token: "LLC", Canonical: "LLC", Classification: model.ClassificationAcronym,
			Issues: []model.IssueType{}},
	}
	suggestions := []model.Suggestion{
		{Term: "Business Day", ParagraphID: "p-2", Sentence: "s", Reasoning: "recurs undefined"},
	}
	warnings := []model.Warning{
		{Kind: model.WarningMalformedCandidate, Record: "usage", Index: 4},
	}

	report := Build("contract.txt", 6, defs, usages, suggestions, nil, warnings)

	if report.Subject != "contract.txt" {
		t.Errorf("subject = %q", report.Subject)
	}
	s := report.Summary
	if s.TotalParagraphs != 6 || s.TotalDefinitions != 3 || s.TotalUsages != 3 {
		t.Errorf("totals = %+v", s)
	}
	if s.UndefinedUsages != 1 {
		t.Errorf("undefined usages = %d, want 1", s.UndefinedUsages)
	}
	if s.TotalSuggestions != 1 || s.TotalCrossReferences != 0 {
		t.Errorf("suggestion/crossref totals = %+v", s)
	}

	wantCounts := map[model.IssueType]int{
		model.IssueDuplicate:         2,
		model.IssueConflict:          2,
		model.IssueUnusedTerm:        1,
		model.IssueUseBeforeDefine:   1,
		model.IssueMissingDefinition: 1,
		model.IssueDefinitionNeeded:  1,
	}
	for issue, want := range wantCounts {
		if got := s.IssueCounts[issue]; got != want {
			t.Errorf("IssueCounts[%s] = %d, want %d", issue, got, want)
		}
	}
	if len(s.IssueCounts) != len(wantCounts) {
		t.Errorf("IssueCounts has %d entries, want %d: %v", len(s.IssueCounts), len(wantCounts), s.IssueCounts)
	}
}

func TestBuild_EmptyInputsProduceEmptyLists(t *testing.T) {
	report := Build("empty.txt", 0, nil, nil, nil, nil, nil)

	if report.Definitions == nil || report.Usages == nil ||
		report.Suggestions == nil || report.CrossReferences == nil {
		t.Fatal("report lists must be non-nil")
	}
	if len(report.Summary.IssueCounts) != 0 {
		t.Errorf("expected no issue counts, got %v", report.Summary.IssueCounts)
	}
}
