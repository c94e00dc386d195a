// Package engine runs one definition-usage reconciliation pass. The pass
// has a strict two-phase barrier: the definition registry is fully built
// and frozen before any usage is classified. Everything the engine consumes
// is already-materialized data; it performs no I/O and holds no state
// across passes, so identical input always yields an identical report.
package engine

import (
	"context"
	"fmt"

	"github.com/mwalden/termlens/internal/aggregate"
	"github.com/mwalden/termlens/internal/canon"
	"github.com/mwalden/termlens/internal/classify"
	"github.com/mwalden/termlens/internal/document"
	"github.com/mwalden/termlens/internal/model"
	"github.com/mwalden/termlens/internal/registry"
)

// Input is the complete candidate set for one document. Suggestions and
// cross-references are pass-through entities: the engine only counts them.
type Input struct {
	Subject         string
	Paragraphs      []document.Paragraph
	Definitions     []model.RawDefinition
	Usages          []model.RawUsage
	Suggestions     []model.Suggestion
	CrossReferences []model.CrossReference
}

// Engine reconciles candidate definitions and usages into a report.
type Engine struct {
	cfg *model.Config
}

// New creates an engine. A nil config uses the defaults.
func New(cfg *model.Config) *Engine {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// Analyze runs one reconciliation pass. A structurally invalid document
// (duplicate paragraph ids) fails before any analysis; per-record problems
// are collected as warnings in the report instead of aborting the batch.
func (e *Engine) Analyze(ctx context.Context, in Input) (*model.Report, error) {
	index, err := document.NewIndex(in.Paragraphs)
	if err != nil {
		return nil, fmt.Errorf("build paragraph index: %w", err)
	}

	canonicalizer := canon.New(e.cfg.Canon)

	// Phase one: ingest and freeze the registry. Freeze finalizes
	// duplicate, conflict, case-drift and minimum-rank computation.
	reg := registry.New(canonicalizer, index, e.cfg.Registry)
	reg.Ingest(in.Definitions)
	reg.Freeze()

	// Phase two: classify every usage against the frozen registry.
	classifier := classify.New(canonicalizer, reg, index, e.cfg.Classifier, e.cfg.Concurrency.ClassifyWorkers)
	usages, usageWarnings := classifier.Classify(ctx, in.Usages)

	warnings := append([]model.Warning{}, reg.Warnings()...)
	warnings = append(warnings, usageWarnings...)

	report := aggregate.Build(in.Subject, index.Len(), reg.Definitions(), usages,
		in.Suggestions, in.CrossReferences, warnings)
	return report, nil
}
