package registry

import (
	"strings"
	"unicode"
)

// Similarity computes token-set Jaccard similarity between two definition
// texts. Tokens are lowercased words with punctuation stripped, so "means
// this Contract." and "means this contract" compare equal at 1.0. Two empty
// texts are fully similar.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		set[strings.ToLower(field)] = true
	}
	return set
}
