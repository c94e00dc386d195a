package model

// IssueType classifies a consistency problem found during reconciliation
type IssueType string

const (
	IssueDuplicate         IssueType = "duplicate"           // Same canonical term defined more than once
	IssueConflict          IssueType = "conflict"            // Duplicate definitions with materially different text
	IssueCaseDrift         IssueType = "case_drift"          // Same term with inconsistent letter casing
	IssueMissingDefinition IssueType = "missing_definition"  // Capitalized term used but never defined
	IssueUnusedTerm        IssueType = "unused_term"         // Defined term with no resolving usage
	IssueUseBeforeDefine   IssueType = "use_before_define"   // Usage precedes every defining paragraph
	IssueDefinitionNeeded  IssueType = "potential_definition_needed" // Suggestion: term looks definition-worthy
)

// RawDefinition is a candidate definition as proposed by an extractor
// (rule-based, model-based, or manual annotation). The engine owns all
// validation; extractors are trusted for nothing.
type RawDefinition struct {
	TermRaw       string `json:"term_raw"`
	TermCanonical string `json:"term_canonical,omitempty"` // Advisory; the canonicalizer recomputes it
	DefText       string `json:"def_text"`
	ParagraphID   string `json:"paragraph_id"`
	IsInline      bool   `json:"is_inline"` // Parenthetical definition vs dedicated clause
}

// Definition is a reconciled definition with its document-order rank and
// any issues attached during registry ingestion. Issues are only ever
// appended during a pass, never removed.
type Definition struct {
	TermRaw       string      `json:"term_raw"`
	TermCanonical string      `json:"term_canonical"`
	DefText       string      `json:"def_text"`
	ParagraphID   string      `json:"paragraph_id"`
	Rank          int         `json:"rank"`
	IsInline      bool        `json:"is_inline"`
	Issues        []IssueType `json:"issues"`
}

// HasIssue reports whether the definition carries the given issue tag.
func (d *Definition) HasIssue(issue IssueType) bool {
	for _, have := range d.Issues {
		if have == issue {
			return true
		}
	}
	return false
}

// AddIssue appends an issue tag unless it is already present.
func (d *Definition) AddIssue(issue IssueType) {
	if !d.HasIssue(issue) {
		d.Issues = append(d.Issues, issue)
	}
}
