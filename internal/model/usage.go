package model

// Classification categorizes a term usage against the definition set
type Classification string

const (
	ClassificationDefined   Classification = "Defined"   // Resolves to a definition group
	ClassificationUndefined Classification = "Undefined" // Capitalized term with no definition
	ClassificationAcronym   Classification = "Acronym"   // Looks like an acronym; reported, not flagged
	ClassificationNoise     Classification = "Noise"     // Caller-supplied non-term (headers, proper nouns)
)

// RawUsage is a candidate term occurrence as proposed by an extractor.
type RawUsage struct {
	Token              string         `json:"token"`
	Sentence           string         `json:"sentence"`
	ParagraphID        string         `json:"paragraph_id"`
	ClassificationHint Classification `json:"classification_hint,omitempty"` // Advisory only, never trusted
	IsCaseDriftHint    bool           `json:"is_case_drift_hint,omitempty"`
}

// DefLocator points at the definition a usage resolves to.
type DefLocator struct {
	TermCanonical string `json:"term_canonical"`
	ParagraphID   string `json:"paragraph_id"`
}

// Usage is a classified term occurrence. Classification and issues are
// assigned exactly once during the classification phase and are immutable
// afterwards.
type Usage struct {
	Token          string         `json:"token"`
	Canonical      string         `json:"canonical,omitempty"` // Empty when classification is Noise with no key
	Sentence       string         `json:"sentence"`
	ParagraphID    string         `json:"paragraph_id"`
	Rank           int            `json:"rank"`
	Classification Classification `json:"classification"`
	DefLocator     *DefLocator    `json:"def_locator,omitempty"`
	IsCaseDrift    bool           `json:"is_case_drift"`
	Issues         []IssueType    `json:"issues"`
}

// HasIssue reports whether the usage carries the given issue tag.
func (u *Usage) HasIssue(issue IssueType) bool {
	for _, have := range u.Issues {
		if have == issue {
			return true
		}
	}
	return false
}

// Suggestion is a token judged definition-worthy but never defined.
// Produced by an extractor and carried through the engine unmodified.
type Suggestion struct {
	Term        string `json:"term"`
	ParagraphID string `json:"paragraph_id"`
	Sentence    string `json:"sentence"`
	Reasoning   string `json:"reasoning"`
}

// CrossReference is a reference to a section, exhibit, schedule or similar.
// Pass-through entity, not reconciled against definitions.
type CrossReference struct {
	Token       string `json:"token"`
	Sentence    string `json:"sentence"`
	ParagraphID string `json:"paragraph_id"`
}
