package extract

import (
	"strings"
	"testing"

	"github.com/mwalden/termlens/internal/canon"
	"github.com/mwalden/termlens/internal/document"
	"github.com/mwalden/termlens/internal/model"
)

func TestParagraphsFromText(t *testing.T) {
	text := "First paragraph\nwith a wrapped line.\n\nSecond paragraph.\n\n\n\nThird."
	ps := ParagraphsFromText(text)

	if len(ps) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(ps))
	}
	if ps[0].ID != "para-0" || ps[2].ID != "para-2" {
		t.Errorf("unexpected ids: %s, %s", ps[0].ID, ps[2].ID)
	}
	if ps[0].Text != "First paragraph with a wrapped line." {
		t.Errorf("wrapped line not joined: %q", ps[0].Text)
	}
}

func TestParagraphsFromHTML(t *testing.T) {
	htmlContent := `<html><head><title>x</title><style>p{}</style></head><body>
		<h1>Share Purchase Agreement</h1>
		<p>"Agreement" means this contract.</p>
		<script>var skip = true;</script>
		<p>This Agreement is binding.</p>
	</body></html>`

	ps, err := ParagraphsFromHTML(htmlContent)
	if err != nil {
		t.Fatalf("ParagraphsFromHTML: %v", err)
	}
	if len(ps) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %+v", len(ps), ps)
	}
	if ps[0].Text != "Share Purchase Agreement" {
		t.Errorf("heading not extracted: %q", ps[0].Text)
	}
	for _, p := range ps {
		if strings.Contains(p.Text, "skip") {
			t.Errorf("script content leaked into %q", p.Text)
		}
	}
}

func TestDefinitions_DedicatedClause(t *testing.T) {
	ps := []document.Paragraph{
		{ID: "para-0", Text: `"Agreement" means this share purchase contract. "Business Day" shall mean any day other than a Saturday.`},
	}
	defs := Definitions(ps)

	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d: %+v", len(defs), defs)
	}
	if defs[0].TermRaw != "Agreement" || defs[0].IsInline {
		t.Errorf("defs[0] = %+v", defs[0])
	}
	if defs[0].DefText != "this share purchase contract." {
		t.Errorf("def text = %q", defs[0].DefText)
	}
	if defs[1].TermRaw != "Business Day" {
		t.Errorf("defs[1] = %+v", defs[1])
	}
}

func TestDefinitions_InlineParenthetical(t *testing.T) {
	ps := []document.Paragraph{
		{ID: "para-0", Text: `Acme Holdings Ltd (the "Seller") and Bidco Inc (the "Purchaser") agree as follows.`},
	}
	defs := Definitions(ps)

	if len(defs) != 2 {
		t.Fatalf("expected 2 inline definitions, got %d: %+v", len(defs), defs)
	}
	for _, d := range defs {
		if !d.IsInline {
			t.Errorf("definition %q not marked inline", d.TermRaw)
		}
	}
	if defs[0].TermRaw != "Seller" || defs[1].TermRaw != "Purchaser" {
		t.Errorf("terms = %q, %q", defs[0].TermRaw, defs[1].TermRaw)
	}
}

func TestDefinitions_SmartQuotes(t *testing.T) {
	ps := []document.Paragraph{
		{ID: "para-0", Text: `“Closing Date” means the third Business Day after signing.`},
	}
	defs := Definitions(ps)

	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	if defs[0].TermRaw != "Closing Date" {
		t.Errorf("term = %q", defs[0].TermRaw)
	}
}

func TestUsages_CapitalizedPhrases(t *testing.T) {
	ps := []document.Paragraph{
		{ID: "para-0", Text: `This Agreement is binding on the Purchaser and any LLC it controls.`},
	}
	usages := Usages(ps)

	tokens := make(map[string]bool)
	for _, u := range usages {
		tokens[u.Token] = true
		if u.ParagraphID != "para-0" {
			t.Errorf("usage %q has paragraph %s", u.Token, u.ParagraphID)
		}
	}
	for _, want := range []string{"Agreement", "Purchaser", "LLC"} {
		if !tokens[want] {
			t.Errorf("missing usage %q; got %v", want, tokens)
		}
	}
	if tokens["This"] {
		t.Error("sentence-lead word reported as usage")
	}
}

func TestCrossReferences(t *testing.T) {
	ps := []document.Paragraph{
		{ID: "para-0", Text: `Subject to Section 4.2 and Exhibit A, the parties shall close under Article IX.`},
	}
	refs := CrossReferences(ps)

	if len(refs) != 3 {
		t.Fatalf("expected 3 cross-references, got %d: %+v", len(refs), refs)
	}
	want := []string{"Section 4.2", "Exhibit A", "Article IX"}
	for i, ref := range refs {
		if ref.Token != want[i] {
			t.Errorf("refs[%d] = %q, want %q", i, ref.Token, want[i])
		}
	}
}

func TestSuggestions_RecurringUndefinedTerm(t *testing.T) {
	sentence := "The Escrow Amount shall be held until released."
	ps := []document.Paragraph{
		{ID: "para-0", Text: sentence},
		{ID: "para-1", Text: sentence},
		{ID: "para-2", Text: sentence},
		{ID: "para-3", Text: `"Agreement" means this contract. The Agreement is binding.`},
	}
	defs := []model.RawDefinition{
		{TermRaw: "Agreement", DefText: "means this contract", ParagraphID: "para-3"},
	}

	c := canon.New(model.DefaultConfig().Canon)
	suggestions := Suggestions(ps, defs, c, 3)

	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d: %+v", len(suggestions), suggestions)
	}
	s := suggestions[0]
	if s.Term != "Escrow Amount" {
		t.Errorf("term = %q", s.Term)
	}
	if s.ParagraphID != "para-0" {
		t.Errorf("paragraph = %s, want first occurrence", s.ParagraphID)
	}
	if !strings.Contains(s.Reasoning, "3 times") {
		t.Errorf("reasoning = %q", s.Reasoning)
	}
}
