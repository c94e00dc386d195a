package model

import "time"

// WarningKind classifies a per-record problem that did not abort the pass
type WarningKind string

const (
	WarningMalformedCandidate WarningKind = "malformed_candidate" // Required field missing; record dropped
	WarningUnknownParagraph   WarningKind = "unknown_paragraph"   // Paragraph id not in the index; record skipped
)

// Warning records a dropped or skipped candidate with its original index,
// so no input record is ever silently swallowed.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Record string      `json:"record"` // "definition" or "usage"
	Index  int         `json:"index"`  // Position in the input candidate list
	Detail string      `json:"detail"`
}

// Report is the complete result of one reconciliation pass. It is immutable
// once returned and serializes deterministically: all lists are in stable
// canonical-key/document order regardless of worker scheduling.
type Report struct {
	Subject    string    `json:"subject"`               // Document name or URL
	AnalyzedAt time.Time `json:"analyzed_at,omitempty"` // Zero and omitted in deterministic mode

	Definitions     []Definition     `json:"definitions"`
	Usages          []Usage          `json:"usages"`
	Suggestions     []Suggestion     `json:"suggestions"`
	CrossReferences []CrossReference `json:"cross_references"`

	Warnings []Warning `json:"warnings,omitempty"`

	Summary Summary `json:"summary"`
}

// Summary holds document-level counts derived from the reconciled lists.
type Summary struct {
	TotalParagraphs      int               `json:"total_paragraphs"`
	TotalDefinitions     int               `json:"total_definitions"`
	TotalUsages          int               `json:"total_usages"`
	UndefinedUsages      int               `json:"undefined_usages"`
	TotalSuggestions     int               `json:"total_suggestions"`
	TotalCrossReferences int               `json:"total_cross_references"`
	IssueCounts          map[IssueType]int `json:"issue_counts"`
}
