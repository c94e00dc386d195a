package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mwalden/termlens/internal/model"
)

// Renderer turns a report into its output representations.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(cfg model.OutputConfig) *Renderer {
	return &Renderer{includeFooter: cfg.IncludeFooter}
}

// JSON renders the report as indented JSON.
func (r *Renderer) JSON(report *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// Markdown renders the report as a human-readable summary.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Term Analysis: %s\n\n", report.Subject)
	if !report.AnalyzedAt.IsZero() {
		fmt.Fprintf(&b, "Analyzed: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Paragraphs | %d |\n", report.Summary.TotalParagraphs)
	fmt.Fprintf(&b, "| Defined terms | %d |\n", report.Summary.TotalDefinitions)
	fmt.Fprintf(&b, "| Term usages | %d |\n", report.Summary.TotalUsages)
	fmt.Fprintf(&b, "| Undefined usages | %d |\n", report.Summary.UndefinedUsages)
	fmt.Fprintf(&b, "| Suggestions | %d |\n", report.Summary.TotalSuggestions)
	fmt.Fprintf(&b, "| Cross references | %d |\n", report.Summary.TotalCrossReferences)
	b.WriteString("\n")

	r.writeIssueCounts(&b, report.Summary.IssueCounts)
	r.writeDefinitions(&b, report.Definitions)
	r.writeUsageIssues(&b, report.Usages)
	r.writeSuggestions(&b, report.Suggestions)
	r.writeCrossReferences(&b, report.CrossReferences)
	r.writeWarnings(&b, report.Warnings)

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by termlens.\n")
	}
	return b.String()
}

func (r *Renderer) writeIssueCounts(b *strings.Builder, counts map[model.IssueType]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	b.WriteString("## Issues\n\n")
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %d\n", k, counts[model.IssueType(k)])
	}
	b.WriteString("\n")
}

func (r *Renderer) writeDefinitions(b *strings.Builder, defs []model.Definition) {
	if len(defs) == 0 {
		return
	}
	b.WriteString("## Defined Terms\n\n")
	for _, d := range defs {
		fmt.Fprintf(b, "- **%s** (%s)", d.TermRaw, d.ParagraphID)
		if len(d.Issues) > 0 {
			fmt.Fprintf(b, " [%s]", joinIssues(d.Issues))
		}
		if d.IsInline {
			b.WriteString(" (inline)")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// writeUsageIssues lists only problem usages; clean usages would drown
// the report in noise.
func (r *Renderer) writeUsageIssues(b *strings.Builder, usages []model.Usage) {
	var flagged []model.Usage
	for _, u := range usages {
		if len(u.Issues) > 0 {
			flagged = append(flagged, u)
		}
	}
	if len(flagged) == 0 {
		return
	}
	b.WriteString("## Flagged Usages\n\n")
	for _, u := range flagged {
		fmt.Fprintf(b, "- **%s** (%s) [%s]: %s\n", u.Token, u.ParagraphID, joinIssues(u.Issues), truncate(u.Sentence, 120))
	}
	b.WriteString("\n")
}

func (r *Renderer) writeSuggestions(b *strings.Builder, suggestions []model.Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	b.WriteString("## Suggested Definitions\n\n")
	for _, s := range suggestions {
		fmt.Fprintf(b, "- **%s** (%s): %s\n", s.Term, s.ParagraphID, s.Reasoning)
	}
	b.WriteString("\n")
}

func (r *Renderer) writeCrossReferences(b *strings.Builder, refs []model.CrossReference) {
	if len(refs) == 0 {
		return
	}
	b.WriteString("## Cross References\n\n")
	for _, ref := range refs {
		fmt.Fprintf(b, "- %s (%s)\n", ref.Token, ref.ParagraphID)
	}
	b.WriteString("\n")
}

func (r *Renderer) writeWarnings(b *strings.Builder, warnings []model.Warning) {
	if len(warnings) == 0 {
		return
	}
	b.WriteString("## Warnings\n\n")
	for _, w := range warnings {
		fmt.Fprintf(b, "- %s %s #%d: %s\n", w.Record, w.Kind, w.Index, w.Detail)
	}
	b.WriteString("\n")
}

func joinIssues(issues []model.IssueType) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = string(issue)
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
