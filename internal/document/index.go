// Package document holds the paragraph-ordered view of a contract. The
// index is built once per document and is read-only afterwards.
package document

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateParagraphID means the input document structure itself is
	// invalid; index construction aborts before any analysis begins.
	ErrDuplicateParagraphID = errors.New("duplicate paragraph id")

	// ErrUnknownParagraph means a candidate referenced a paragraph id that
	// is not in the document.
	ErrUnknownParagraph = errors.New("unknown paragraph id")
)

// Paragraph is one ordered unit of document text.
type Paragraph struct {
	ID   string `json:"paragraph_id"`
	Text string `json:"text"`
}

// Index maps paragraph ids to their document-order rank. Ranks form a
// strict total order matching input sequence order.
type Index struct {
	paragraphs []Paragraph
	ranks      map[string]int
}

// NewIndex builds an index from an ordered paragraph sequence. Ids must be
// unique; a repeated id fails construction with ErrDuplicateParagraphID.
func NewIndex(paragraphs []Paragraph) (*Index, error) {
	ranks := make(map[string]int, len(paragraphs))
	for i, p := range paragraphs {
		if _, seen := ranks[p.ID]; seen {
			return nil, fmt.Errorf("%w: %q at position %d", ErrDuplicateParagraphID, p.ID, i)
		}
		ranks[p.ID] = i
	}
	ps := make([]Paragraph, len(paragraphs))
	copy(ps, paragraphs)
	return &Index{paragraphs: ps, ranks: ranks}, nil
}

// RankOf returns the document-order rank of a paragraph id.
func (x *Index) RankOf(id string) (int, error) {
	rank, ok := x.ranks[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParagraph, id)
	}
	return rank, nil
}

// Precedes reports whether paragraph a comes strictly before paragraph b.
func (x *Index) Precedes(a, b string) (bool, error) {
	ra, err := x.RankOf(a)
	if err != nil {
		return false, err
	}
	rb, err := x.RankOf(b)
	if err != nil {
		return false, err
	}
	return ra < rb, nil
}

// Len returns the number of paragraphs.
func (x *Index) Len() int {
	return len(x.paragraphs)
}

// Paragraphs returns the paragraphs in document order.
func (x *Index) Paragraphs() []Paragraph {
	return x.paragraphs
}
