// Package registry ingests candidate definitions, groups them by canonical
// key, and detects duplicate, conflicting, and case-drifted definitions.
//
// A registry goes through two phases: ingestion, then a frozen read-only
// phase. Freeze finalizes group tagging and minimum-rank computation;
// classification must not start before Freeze and ingestion must not happen
// after it.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mwalden/termlens/internal/canon"
	"github.com/mwalden/termlens/internal/document"
	"github.com/mwalden/termlens/internal/model"
)

// ErrFrozenRegistry is a contract error: the caller mutated the registry
// after the classification barrier. Correct callers never trigger it.
var ErrFrozenRegistry = errors.New("registry is frozen")

type entry struct {
	def   *model.Definition
	order int // ingestion order, tie-break for equal ranks
}

// Registry groups definitions by canonical key.
type Registry struct {
	canon     *canon.Canonicalizer
	index     *document.Index
	threshold float64

	groups   map[string][]*entry
	keyOrder []string // first-ingestion order of canonical keys
	minRank  map[string]int
	warnings []model.Warning
	ingested int
	frozen   bool
}

// New creates an empty registry bound to a paragraph index.
func New(c *canon.Canonicalizer, idx *document.Index, cfg model.RegistryConfig) *Registry {
	threshold := cfg.SimilarityThreshold
	if threshold <= 0 {
		threshold = 0.85
	}
	return &Registry{
		canon:     c,
		index:     idx,
		threshold: threshold,
		groups:    make(map[string][]*entry),
		minRank:   make(map[string]int),
	}
}

// Ingest canonicalizes the candidates and adds them to their groups.
// Malformed candidates (missing term or definition text) and candidates
// with an unknown paragraph id are dropped and recorded as warnings with
// their original index; one bad record never fails the batch.
func (r *Registry) Ingest(candidates []model.RawDefinition) {
	if r.frozen {
		panic(ErrFrozenRegistry)
	}
	for i, cand := range candidates {
		term := strings.TrimSpace(cand.TermRaw)
		if term == "" || strings.TrimSpace(cand.DefText) == "" {
			r.warnings = append(r.warnings, model.Warning{
				Kind:   model.WarningMalformedCandidate,
				Record: "definition",
				Index:  i,
				Detail: "missing term or definition text",
			})
			continue
		}
		rank, err := r.index.RankOf(cand.ParagraphID)
		if err != nil {
			r.warnings = append(r.warnings, model.Warning{
				Kind:   model.WarningUnknownParagraph,
				Record: "definition",
				Index:  i,
				Detail: fmt.Sprintf("paragraph %q not in document", cand.ParagraphID),
			})
			continue
		}

		key := r.canon.Canonicalize(term)
		def := &model.Definition{
			TermRaw:       term,
			TermCanonical: key,
			DefText:       cand.DefText,
			ParagraphID:   cand.ParagraphID,
			Rank:          rank,
			IsInline:      cand.IsInline,
			Issues:        []model.IssueType{},
		}
		if _, seen := r.groups[key]; !seen {
			r.keyOrder = append(r.keyOrder, key)
		}
		r.groups[key] = append(r.groups[key], &entry{def: def, order: r.ingested})
		r.ingested++
	}
}

// Freeze finalizes the registry: duplicate, conflict, and case-drift tags
// are attached and per-key minimum ranks recorded. After Freeze the registry
// is read-only except for issue tagging.
func (r *Registry) Freeze() {
	if r.frozen {
		return
	}
	r.frozen = true

	for key, group := range r.groups {
		// Document order within the group; ingestion order breaks rank ties.
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].def.Rank != group[j].def.Rank {
				return group[i].def.Rank < group[j].def.Rank
			}
			return group[i].order < group[j].order
		})

		r.minRank[key] = group[0].def.Rank

		if len(group) < 2 {
			continue
		}
		for _, e := range group {
			e.def.AddIssue(model.IssueDuplicate)
		}
		if r.hasConflict(group) {
			for _, e := range group {
				e.def.AddIssue(model.IssueConflict)
			}
		}
		r.tagCaseDrift(group)
	}
}

// hasConflict reports whether any pair of definition texts in a duplicate
// group falls below the similarity threshold.
func (r *Registry) hasConflict(group []*entry) bool {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if Similarity(group[i].def.DefText, group[j].def.DefText) < r.threshold {
				return true
			}
		}
	}
	return false
}

// tagCaseDrift tags every pair of group members whose raw terms differ only
// in letter case.
func (r *Registry) tagCaseDrift(group []*entry) {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			a, b := group[i].def.TermRaw, group[j].def.TermRaw
			if a != b && strings.EqualFold(a, b) {
				group[i].def.AddIssue(model.IssueCaseDrift)
				group[j].def.AddIssue(model.IssueCaseDrift)
			}
		}
	}
}

// Lookup returns the definition group for a canonical key in document
// order, or an empty slice. Valid only after Freeze.
func (r *Registry) Lookup(key string) []*model.Definition {
	r.mustBeFrozen("Lookup")
	group := r.groups[key]
	defs := make([]*model.Definition, len(group))
	for i, e := range group {
		defs[i] = e.def
	}
	return defs
}

// Has reports whether the canonical key has at least one definition.
func (r *Registry) Has(key string) bool {
	return len(r.groups[key]) > 0
}

// FirstDefined returns the earliest-document-order definition for a key
// (ties broken by ingestion order), or nil. Valid only after Freeze.
func (r *Registry) FirstDefined(key string) *model.Definition {
	r.mustBeFrozen("FirstDefined")
	group := r.groups[key]
	if len(group) == 0 {
		return nil
	}
	return group[0].def
}

// MinRank returns the minimum paragraph rank among a key's definitions.
// Valid only after Freeze.
func (r *Registry) MinRank(key string) (int, bool) {
	r.mustBeFrozen("MinRank")
	rank, ok := r.minRank[key]
	return rank, ok
}

// TagUnused attaches the unused-term issue to every definition whose
// canonical key is absent from usedKeys. Issue tagging is the one mutation
// allowed after Freeze: issue sets are monotonically additive for the whole
// pass.
func (r *Registry) TagUnused(usedKeys map[string]bool) {
	r.mustBeFrozen("TagUnused")
	for _, group := range r.groups {
		for _, e := range group {
			if !usedKeys[e.def.TermCanonical] {
				e.def.AddIssue(model.IssueUnusedTerm)
			}
		}
	}
}

// Definitions returns every ingested definition ordered by document rank,
// with ingestion order breaking ties. Valid only after Freeze.
func (r *Registry) Definitions() []*model.Definition {
	r.mustBeFrozen("Definitions")
	var all []*entry
	for _, key := range r.keyOrder {
		all = append(all, r.groups[key]...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].def.Rank != all[j].def.Rank {
			return all[i].def.Rank < all[j].def.Rank
		}
		return all[i].order < all[j].order
	})
	defs := make([]*model.Definition, len(all))
	for i, e := range all {
		defs[i] = e.def
	}
	return defs
}

// Warnings returns the per-record warnings collected during ingestion.
func (r *Registry) Warnings() []model.Warning {
	return r.warnings
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

func (r *Registry) mustBeFrozen(op string) {
	if !r.frozen {
		panic(fmt.Errorf("registry: %s before Freeze", op))
	}
}
