// Package canon normalizes raw term strings into canonical keys. Two raw
// terms are the same term iff their canonical keys are equal. The mapping is
// a pure function of the configuration and the input, and is idempotent.
package canon

import (
	"strings"
	"unicode"

	"github.com/mwalden/termlens/internal/model"
)

// Canonicalizer produces canonical keys under a fixed policy.
type Canonicalizer struct {
	folding       model.CaseFolding
	suffixes      []string
	acronymMaxLen int
	knownAcronyms map[string]bool
}

// New creates a canonicalizer from configuration. Unset fields fall back to
// the model defaults.
func New(cfg model.CanonConfig) *Canonicalizer {
	if cfg.Folding == "" {
		cfg.Folding = model.CaseTitleInsensitive
	}
	if cfg.AcronymMaxLen <= 0 {
		cfg.AcronymMaxLen = 6
	}
	known := make(map[string]bool, len(cfg.KnownAcronyms))
	for _, a := range cfg.KnownAcronyms {
		known[strings.ToUpper(a)] = true
	}
	return &Canonicalizer{
		folding:       cfg.Folding,
		suffixes:      cfg.StripSuffixes,
		acronymMaxLen: cfg.AcronymMaxLen,
		knownAcronyms: known,
	}
}

// Canonicalize maps a raw term to its canonical key: whitespace is trimmed
// and collapsed, a trailing plural/possessive suffix is stripped unless that
// would collapse the term into a different known acronym, and letter case is
// folded per policy.
//
// Folding can expose a suffix the first strip pass did not see (for example
// an upper-case trailing S), so strip and fold repeat until the string stops
// changing. The output is a fixpoint of one pass, which makes the mapping
// idempotent for every folding policy.
func (c *Canonicalizer) Canonicalize(raw string) string {
	s := collapseWhitespace(raw)
	for s != "" {
		next := c.fold(c.stripSuffix(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// IsAcronym reports whether the raw token looks like an acronym: two to
// acronymMaxLen characters, at least one letter, and no lowercase letters.
func (c *Canonicalizer) IsAcronym(raw string) bool {
	s := collapseWhitespace(raw)
	if len(s) < 2 || len(s) > c.acronymMaxLen {
		return false
	}
	letters := 0
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters > 0
}

func (c *Canonicalizer) stripSuffix(s string) string {
	last := lastWord(s)
	// Acronyms keep their exact form; "LLCs" still strips to "LLC" because
	// the trailing lowercase s disqualifies the token as an acronym.
	if c.IsAcronym(last) {
		return s
	}
	for _, suffix := range c.suffixes {
		if suffix == "" || !strings.HasSuffix(s, suffix) {
			continue
		}
		candidate := s[:len(s)-len(suffix)]
		word := lastWord(candidate)
		if word == "" {
			continue
		}
		// A bare "s" strip off a word ending in "ss" would strip again on
		// the next pass; skip it to keep the mapping idempotent.
		if suffix == "s" && strings.HasSuffix(word, "s") {
			continue
		}
		if c.knownAcronyms[strings.ToUpper(word)] && !strings.EqualFold(word, last) {
			continue
		}
		return candidate
	}
	return s
}

func (c *Canonicalizer) fold(s string) string {
	switch c.folding {
	case model.CaseSensitive:
		return s
	case model.CaseInsensitive:
		return strings.ToLower(s)
	default: // title-insensitive: fold everything except all-caps tokens
		words := strings.Split(s, " ")
		for i, w := range words {
			if !isAllUpper(w) {
				words[i] = strings.ToLower(w)
			}
		}
		return strings.Join(words, " ")
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func lastWord(s string) string {
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		return s[i+1:]
	}
	return s
}

func isAllUpper(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters > 0
}
