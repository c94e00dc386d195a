// Package aggregate merges the outputs of one reconciliation pass into a
// single flat report with document-level summary counts. It attaches
// nothing: every issue has already been assigned by the registry or the
// classifier, and inputs are never mutated here.
package aggregate

import (
	"github.com/mwalden/termlens/internal/model"
)

// Build assembles the final report. All list fields are non-nil so the
// serialized report is stable and structurally complete even when empty.
func Build(subject string, paragraphs int, defs []*model.Definition, usages []model.Usage,
	suggestions []model.Suggestion, crossRefs []model.CrossReference, warnings []model.Warning) *model.Report {

	report := &model.Report{
		Subject:         subject,
		Definitions:     make([]model.Definition, 0, len(defs)),
		Usages:          usages,
		Suggestions:     suggestions,
		CrossReferences: crossRefs,
		Warnings:        warnings,
	}
	for _, def := range defs {
		report.Definitions = append(report.Definitions, *def)
	}
	if report.Usages == nil {
		report.Usages = []model.Usage{}
	}
	if report.Suggestions == nil {
		report.Suggestions = []model.Suggestion{}
	}
	if report.CrossReferences == nil {
		report.CrossReferences = []model.CrossReference{}
	}

	report.Summary = summarize(report, paragraphs)
	return report
}

func summarize(report *model.Report, paragraphs int) model.Summary {
	counts := make(map[model.IssueType]int)
	for i := range report.Definitions {
		for _, issue := range report.Definitions[i].Issues {
			counts[issue]++
		}
	}
	undefined := 0
	for i := range report.Usages {
		for _, issue := range report.Usages[i].Issues {
			counts[issue]++
		}
		if report.Usages[i].Classification == model.ClassificationUndefined {
			undefined++
		}
	}
	// Every suggestion is by construction a potential-definition finding.
	if len(report.Suggestions) > 0 {
		counts[model.IssueDefinitionNeeded] += len(report.Suggestions)
	}

	return model.Summary{
		TotalParagraphs:      paragraphs,
		TotalDefinitions:     len(report.Definitions),
		TotalUsages:          len(report.Usages),
		UndefinedUsages:      undefined,
		TotalSuggestions:     len(report.Suggestions),
		TotalCrossReferences: len(report.CrossReferences),
		IssueCounts:          counts,
	}
}
