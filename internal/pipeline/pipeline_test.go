package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwalden/termlens/internal/model"
)

const sampleContract = `"Purchase Price" means the amount of ten million dollars payable at the Closing.

The Purchaser shall deliver the Purchase Price to the Seller. "Closing" means the consummation of the transactions described in Section 2.1.

The purchase price shall be adjusted for working capital. The Escrow Amount will be held back. The Escrow Amount secures indemnity claims. The Escrow Amount is released after one year.`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestAnalyzeFile_PlainText(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := writeTempFile(t, "spa.txt", sampleContract)
	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}

	if report.Subject != "spa" {
		t.Errorf("subject = %q, want %q", report.Subject, "spa")
	}
	if report.Summary.TotalParagraphs != 3 {
		t.Errorf("paragraphs = %d, want 3", report.Summary.TotalParagraphs)
	}
	if report.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt not set")
	}

	var gotTerms []string
	for _, d := range report.Definitions {
		gotTerms = append(gotTerms, d.TermRaw)
	}
	if len(gotTerms) < 2 {
		t.Fatalf("definitions = %v, want Purchase Price and Closing", gotTerms)
	}

	var sawSuggestion bool
	for _, s := range report.Suggestions {
		if s.Term == "Escrow Amount" {
			sawSuggestion = true
		}
	}
	if !sawSuggestion {
		t.Errorf("suggestions = %v, want one for Escrow Amount", report.Suggestions)
	}

	var sawCrossRef bool
	for _, ref := range report.CrossReferences {
		if ref.Token == "Section 2.1" {
			sawCrossRef = true
		}
	}
	if !sawCrossRef {
		t.Errorf("cross references = %v, want Section 2.1", report.CrossReferences)
	}
}

func TestAnalyzeFile_HTML(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html := `<html><body>
<p>"Effective Date" means January 1, 2026.</p>
<p>Payment is due thirty days after the Effective Date.</p>
</body></html>`
	path := writeTempFile(t, "terms.html", html)

	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if report.Summary.TotalParagraphs != 2 {
		t.Errorf("paragraphs = %d, want 2", report.Summary.TotalParagraphs)
	}
	if len(report.Definitions) != 1 || report.Definitions[0].TermRaw != "Effective Date" {
		t.Errorf("definitions = %+v, want Effective Date", report.Definitions)
	}
}

func TestAnalyzeFile_DOCX(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>"Deposit" means the earnest money paid by the Buyer.</w:t></w:r></w:p>
    <w:p><w:r><w:t>The Deposit is refundable before the inspection period ends.</w:t></w:r></w:p>
  </w:body>
</w:document>`
	if _, err := f.Write([]byte(body)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}

	path := filepath.Join(t.TempDir(), "purchase.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if report.Subject != "purchase" {
		t.Errorf("subject = %q, want %q", report.Subject, "purchase")
	}
	if report.Summary.TotalParagraphs != 2 {
		t.Errorf("paragraphs = %d, want 2", report.Summary.TotalParagraphs)
	}
	if len(report.Definitions) != 1 || report.Definitions[0].TermRaw != "Deposit" {
		t.Errorf("definitions = %+v, want Deposit", report.Definitions)
	}
}

func TestAnalyzeFile_MissingFile(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.AnalyzeFile(context.Background(), "/nonexistent/contract.txt"); err == nil {
		t.Fatal("AnalyzeFile succeeded on missing file")
	}
}

func TestAnalyzeSource_Dispatch(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := writeTempFile(t, "local.txt", `"Term" means a defined expression.`)
	report, err := p.AnalyzeSource(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeSource(file): %v", err)
	}
	if report.Subject != "local" {
		t.Errorf("subject = %q, want %q", report.Subject, "local")
	}

	if _, err := p.AnalyzeSource(context.Background(), "http://127.0.0.1:1/unreachable"); err == nil {
		t.Error("AnalyzeSource(url) succeeded against closed port")
	}
}

func TestRenderer_JSON(t *testing.T) {
	report := &model.Report{
		Subject: "nda",
		Summary: model.Summary{TotalParagraphs: 2},
	}
	r := NewRenderer(model.OutputConfig{})
	data, err := r.JSON(report)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(string(data), `"subject": "nda"`) {
		t.Errorf("json output missing subject: %s", data)
	}
	if data[len(data)-1] != '\n' {
		t.Error("json output missing trailing newline")
	}
}

func TestRenderer_Markdown(t *testing.T) {
	report := &model.Report{
		Subject: "Share Purchase Agreement",
		Definitions: []model.Definition{
			{TermRaw: "Closing", TermCanonical: "closing", ParagraphID: "para-1",
				Issues: []model.IssueType{model.IssueDuplicate}},
		},
		Usages: []model.Usage{
			{Token: "Escrow Agent", ParagraphID: "para-2", Sentence: "The Escrow Agent holds funds.",
				Classification: model.ClassificationUndefined,
				Issues:         []model.IssueType{model.IssueMissingDefinition}},
		},
		Suggestions: []model.Suggestion{
			{Term: "Escrow Agent", ParagraphID: "para-2", Reasoning: "capitalized term recurs 3 times without a definition"},
		},
		Warnings: []model.Warning{
			{Kind: model.WarningUnknownParagraph, Record: "usage", Index: 4, Detail: "paragraph ghost not found"},
		},
		Summary: model.Summary{
			TotalParagraphs:  2,
			TotalDefinitions: 1,
			TotalUsages:      1,
			UndefinedUsages:  1,
			IssueCounts: map[model.IssueType]int{
				model.IssueDuplicate:         1,
				model.IssueMissingDefinition: 1,
			},
		},
	}

	out := NewRenderer(model.OutputConfig{IncludeFooter: true}).Markdown(report)

	for _, want := range []string{
		"# Term Analysis: Share Purchase Agreement",
		"| Defined terms | 1 |",
		"- duplicate: 1",
		"**Closing** (para-1) [duplicate]",
		"## Flagged Usages",
		"**Escrow Agent** (para-2) [missing_definition]",
		"## Suggested Definitions",
		"## Warnings",
		"usage unknown_paragraph #4",
		"Generated by termlens.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n---\n%s", want, out)
		}
	}

	bare := NewRenderer(model.OutputConfig{}).Markdown(report)
	if strings.Contains(bare, "Generated by termlens.") {
		t.Error("footer rendered with IncludeFooter disabled")
	}
}
