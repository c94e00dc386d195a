package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mwalden/termlens/internal/document"
)

// ParagraphsFromDOCX extracts paragraphs from a DOCX file in document
// order. A DOCX is a zip archive; the body lives in word/document.xml as
// w:p paragraph elements whose visible text sits in w:t runs.
func ParagraphsFromDOCX(data []byte) ([]document.Paragraph, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	var body *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return nil, errors.New("docx archive has no word/document.xml")
	}

	rc, err := body.Open()
	if err != nil {
		return nil, fmt.Errorf("open document body: %w", err)
	}
	defer func() { _ = rc.Close() }()

	return docxParagraphs(rc)
}

func docxParagraphs(r io.Reader) ([]document.Paragraph, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []document.Paragraph
	var text strings.Builder
	inText := false

	flush := func() {
		s := collapseSpaces(strings.TrimSpace(text.String()))
		text.Reset()
		if s == "" {
			return
		}
		paragraphs = append(paragraphs, document.Paragraph{
			ID:   fmt.Sprintf("para-%d", len(paragraphs)),
			Text: s,
		})
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab", "br", "cr":
				text.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		}
	}
	flush()
	return paragraphs, nil
}
