package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mwalden/termlens/internal/document"
	"github.com/mwalden/termlens/internal/model"
)

func TestRenderParagraphs(t *testing.T) {
	text := RenderParagraphs([]document.Paragraph{
		{ID: "para-0", Text: "First."},
		{ID: "para-1", Text: "Second."},
	})

	if !strings.Contains(text, "[para-0] First.") {
		t.Errorf("missing first paragraph block: %q", text)
	}
	if !strings.Contains(text, "[para-1] Second.") {
		t.Errorf("missing second paragraph block: %q", text)
	}
}

func TestPrompts_CarryKnownTerms(t *testing.T) {
	prompt := usagesUserPrompt("body", []string{"Agreement", "Business Day"})
	if !strings.Contains(prompt, `"Agreement", "Business Day"`) {
		t.Errorf("known terms missing from prompt: %q", prompt)
	}

	empty := suggestionsUserPrompt("body", nil)
	if !strings.Contains(empty, "[]") {
		t.Errorf("empty term list not rendered: %q", empty)
	}
}

func TestWireResponses_DecodeIntoModel(t *testing.T) {
	raw := `{"definitions":[{"term_raw":"Agreement","term_canonical":"agreement","def_text":"means this contract","paragraphId":"para-1","is_inline":false}]}`
	var resp definitionsResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	defs := resp.toModel()
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	if defs[0].ParagraphID != "para-1" || defs[0].TermRaw != "Agreement" {
		t.Errorf("decoded = %+v", defs[0])
	}

	rawUsages := `{"usages":[{"token":"Agreement","sentence":"This Agreement is binding.","paragraphId":"para-5"}]}`
	var uresp usagesResponse
	if err := json.Unmarshal([]byte(rawUsages), &uresp); err != nil {
		t.Fatalf("unmarshal usages: %v", err)
	}
	usages := uresp.toModel()
	if len(usages) != 1 || usages[0].ParagraphID != "para-5" {
		t.Errorf("decoded usages = %+v", usages)
	}
}

func TestNewProvider(t *testing.T) {
	if p, err := NewProvider(model.LLMConfig{}); err != nil || p != nil {
		t.Errorf("disabled config: provider %v, err %v", p, err)
	}
	if _, err := NewProvider(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("expected error for openai without API key")
	}
	if _, err := NewProvider(model.LLMConfig{Provider: "bard"}); err == nil {
		t.Error("expected error for unknown provider")
	}
	p, err := NewProvider(model.LLMConfig{Provider: "openai", APIKey: "sk-test"})
	if err != nil || p == nil || p.Name() != "openai" {
		t.Errorf("openai provider = %v, err %v", p, err)
	}
}
