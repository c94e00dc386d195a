package extract

import (
	"archive/zip"
	"bytes"
	"testing"
)

// buildDOCX assembles a minimal DOCX archive around the given body XML.
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func TestParagraphsFromDOCX(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>&#8220;Closing&#8221; means the </w:t></w:r><w:r><w:t>consummation of the transactions.</w:t></w:r></w:p>
    <w:p><w:pPr></w:pPr></w:p>
    <w:p><w:r><w:t>The Purchaser shall</w:t></w:r><w:r><w:tab/><w:t>pay at the Closing.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	paragraphs, err := ParagraphsFromDOCX(buildDOCX(t, body))
	if err != nil {
		t.Fatalf("ParagraphsFromDOCX: %v", err)
	}
	if len(paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2 (empty paragraph skipped): %+v", len(paragraphs), paragraphs)
	}
	if paragraphs[0].ID != "para-0" || paragraphs[1].ID != "para-1" {
		t.Errorf("ids = %q, %q, want para-0, para-1", paragraphs[0].ID, paragraphs[1].ID)
	}
	if want := "“Closing” means the consummation of the transactions."; paragraphs[0].Text != want {
		t.Errorf("paragraphs[0].Text = %q, want %q", paragraphs[0].Text, want)
	}
	if want := "The Purchaser shall pay at the Closing."; paragraphs[1].Text != want {
		t.Errorf("paragraphs[1].Text = %q, want %q", paragraphs[1].Text, want)
	}
}

func TestParagraphsFromDOCX_BadInput(t *testing.T) {
	if _, err := ParagraphsFromDOCX([]byte("not a zip archive")); err == nil {
		t.Error("expected error for non-zip input")
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if _, err := w.Create("word/styles.xml"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := ParagraphsFromDOCX(buf.Bytes()); err == nil {
		t.Error("expected error for archive without word/document.xml")
	}
}
