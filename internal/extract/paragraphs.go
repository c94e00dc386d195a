// Package extract is the rule-based candidate generator: it turns document
// text into ordered paragraphs and proposes definition, usage, suggestion
// and cross-reference candidates for the engine. It only proposes; all
// reconciliation logic lives behind the engine's data contract.
package extract

import (
	"fmt"
	"strings"

	"github.com/mwalden/termlens/internal/document"
	"golang.org/x/net/html"
)

// ParagraphsFromText splits plain text into paragraphs on blank lines.
// Paragraph ids follow input order.
func ParagraphsFromText(text string) []document.Paragraph {
	var paragraphs []document.Paragraph
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(strings.ReplaceAll(block, "\n", " "))
		if block == "" {
			continue
		}
		paragraphs = append(paragraphs, document.Paragraph{
			ID:   fmt.Sprintf("para-%d", len(paragraphs)),
			Text: collapseSpaces(block),
		})
	}
	return paragraphs
}

// ParagraphsFromHTML extracts block-level text from an HTML document in
// document order. Script, style and similar invisible nodes are skipped.
func ParagraphsFromHTML(htmlContent string) ([]document.Paragraph, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var paragraphs []document.Paragraph
	appendBlock := func(text string) {
		text = collapseSpaces(text)
		if text == "" {
			return
		}
		paragraphs = append(paragraphs, document.Paragraph{
			ID:   fmt.Sprintf("para-%d", len(paragraphs)),
			Text: text,
		})
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			case "p", "li", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "td":
				appendBlock(nodeText(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return paragraphs, nil
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitSentences splits paragraph text on sentence terminators, looking one
// byte ahead so common abbreviations do not split mid-sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == ';' {
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				flush()
			}
		}
	}
	flush()
	return sentences
}
