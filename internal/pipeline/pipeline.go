package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mwalden/termlens/internal/cache"
	"github.com/mwalden/termlens/internal/canon"
	"github.com/mwalden/termlens/internal/document"
	"github.com/mwalden/termlens/internal/engine"
	"github.com/mwalden/termlens/internal/extract"
	"github.com/mwalden/termlens/internal/llm"
	"github.com/mwalden/termlens/internal/model"
)

// suggestionMinOccurrences is how often an undefined capitalized phrase
// must recur before the rule-based generator suggests defining it.
const suggestionMinOccurrences = 3

// Pipeline wires fetching, candidate generation, and reconciliation into
// a single document analysis flow.
type Pipeline struct {
	cfg      *model.Config
	fetcher  *Fetcher
	engine   *engine.Engine
	provider llm.Provider
}

// New builds a pipeline from config. An LLM provider is attached only
// when one is configured; candidate generation falls back to the
// rule-based extractors when it is absent or unreachable.
func New(cfg *model.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	var store cache.Store
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayered(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemory(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("configure llm provider: %w", err)
	}

	return &Pipeline{
		cfg:      cfg,
		fetcher:  NewFetcher(cfg.HTTP, store),
		engine:   engine.New(cfg),
		provider: provider,
	}, nil
}

// AnalyzeSource dispatches to AnalyzeURL for http(s) sources and
// AnalyzeFile for everything else.
func (p *Pipeline) AnalyzeSource(ctx context.Context, source string) (*model.Report, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return p.AnalyzeURL(ctx, source)
	}
	return p.AnalyzeFile(ctx, source)
}

// AnalyzeFile reads a local document and analyzes it. The extension picks
// the parser: .html/.htm as HTML, .docx as WordprocessingML, everything
// else as plain text.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var paragraphs []document.Paragraph
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		paragraphs, err = extract.ParagraphsFromHTML(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".docx":
		paragraphs, err = extract.ParagraphsFromDOCX(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		paragraphs = extract.ParagraphsFromText(string(data))
	}

	subject := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p.analyze(ctx, subject, paragraphs)
}

// AnalyzeURL fetches a document over HTTP and analyzes it.
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string) (*model.Report, error) {
	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	paragraphs, err := extract.ParagraphsFromHTML(fetched.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	if len(paragraphs) == 0 {
		paragraphs = extract.ParagraphsFromText(fetched.Body)
	}

	return p.analyze(ctx, fetched.Subject, paragraphs)
}

func (p *Pipeline) analyze(ctx context.Context, subject string, paragraphs []document.Paragraph) (*model.Report, error) {
	in := p.generateCandidates(ctx, subject, paragraphs)

	report, err := p.engine.Analyze(ctx, in)
	if err != nil {
		return nil, err
	}
	report.AnalyzedAt = time.Now().UTC()
	return report, nil
}

// generateCandidates produces candidate definitions, usages, suggestions,
// and cross-references. When an LLM provider is attached and reachable it
// proposes the candidates; any provider failure degrades to the
// rule-based extractors so analysis never depends on a remote model.
func (p *Pipeline) generateCandidates(ctx context.Context, subject string, paragraphs []document.Paragraph) engine.Input {
	in := engine.Input{Subject: subject, Paragraphs: paragraphs}

	if p.provider != nil && p.provider.IsAvailable(ctx) {
		if llmIn, err := p.llmCandidates(ctx, subject, paragraphs); err == nil {
			return llmIn
		} else if p.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "llm candidate generation failed, using rule-based extraction: %v\n", err)
		}
	}

	c := canon.New(p.cfg.Canon)
	in.Definitions = extract.Definitions(paragraphs)
	in.Usages = extract.Usages(paragraphs)
	in.Suggestions = extract.Suggestions(paragraphs, in.Definitions, c, suggestionMinOccurrences)
	in.CrossReferences = extract.CrossReferences(paragraphs)
	return in
}

func (p *Pipeline) llmCandidates(ctx context.Context, subject string, paragraphs []document.Paragraph) (engine.Input, error) {
	in := engine.Input{Subject: subject, Paragraphs: paragraphs}
	text := llm.RenderParagraphs(paragraphs)

	defs, err := p.provider.ExtractDefinitions(ctx, text)
	if err != nil {
		return in, fmt.Errorf("extract definitions: %w", err)
	}
	in.Definitions = defs

	c := canon.New(p.cfg.Canon)
	known := make([]string, 0, len(defs))
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		key := c.Canonicalize(d.TermRaw)
		if !seen[key] {
			seen[key] = true
			known = append(known, d.TermRaw)
		}
	}

	if in.Usages, err = p.provider.FindUsages(ctx, text, known); err != nil {
		return in, fmt.Errorf("find usages: %w", err)
	}
	if in.Suggestions, err = p.provider.FindSuggestions(ctx, text, known); err != nil {
		return in, fmt.Errorf("find suggestions: %w", err)
	}
	if in.CrossReferences, err = p.provider.FindCrossReferences(ctx, text); err != nil {
		return in, fmt.Errorf("find cross references: %w", err)
	}
	return in, nil
}
