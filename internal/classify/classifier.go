// Package classify resolves candidate term usages against a frozen
// definition registry. Classification of one usage depends only on the
// registry and the paragraph index, never on other usages, so the phase
// runs on a worker pool and still produces deterministic output.
package classify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mwalden/termlens/internal/canon"
	"github.com/mwalden/termlens/internal/document"
	"github.com/mwalden/termlens/internal/model"
	"github.com/mwalden/termlens/internal/registry"
	"github.com/mwalden/termlens/internal/worker"
)

// Classifier assigns a classification and issue tags to each usage.
type Classifier struct {
	canon   *canon.Canonicalizer
	reg     *registry.Registry
	index   *document.Index
	noise   map[string]bool
	workers int
}

// New creates a classifier. Noise words are matched by canonical key, so
// the list is case-tolerant under the active folding policy.
func New(c *canon.Canonicalizer, reg *registry.Registry, idx *document.Index, cfg model.ClassifierConfig, workers int) *Classifier {
	noise := make(map[string]bool, len(cfg.NoiseWords))
	for _, word := range cfg.NoiseWords {
		if key := c.Canonicalize(word); key != "" {
			noise[key] = true
		}
	}
	return &Classifier{
		canon:   c,
		reg:     reg,
		index:   idx,
		noise:   noise,
		workers: workers,
	}
}

type job struct {
	classifier *Classifier
	candidate  model.RawUsage
	position   int
}

type result struct {
	position int
	usage    *model.Usage
	warning  *model.Warning
}

func (r *result) Err() error { return nil }

func (j *job) Execute(ctx context.Context) worker.Result {
	usage, warning := j.classifier.classifyOne(j.candidate, j.position)
	return &result{position: j.position, usage: usage, warning: warning}
}

// Classify classifies every candidate against the frozen registry and tags
// unused definitions. The registry must be frozen first; classifying
// against a mutable registry is a contract violation.
//
// Output order is stable regardless of worker scheduling: usages are sorted
// by canonical key, then paragraph rank, then input position; warnings by
// input position.
func (c *Classifier) Classify(ctx context.Context, candidates []model.RawUsage) ([]model.Usage, []model.Warning) {
	if !c.reg.Frozen() {
		panic(registry.ErrFrozenRegistry)
	}

	pool := worker.NewPool(ctx, c.workers)
	pool.Start()
	for i, cand := range candidates {
		pool.Submit(&job{classifier: c, candidate: cand, position: i})
	}
	raw := pool.Wait()

	type classified struct {
		usage    model.Usage
		position int
	}
	var items []classified
	var warnings []model.Warning
	for _, res := range raw {
		r := res.(*result)
		if r.warning != nil {
			warnings = append(warnings, *r.warning)
		}
		if r.usage != nil {
			items = append(items, classified{usage: *r.usage, position: r.position})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].usage.Canonical != items[j].usage.Canonical {
			return items[i].usage.Canonical < items[j].usage.Canonical
		}
		if items[i].usage.Rank != items[j].usage.Rank {
			return items[i].usage.Rank < items[j].usage.Rank
		}
		return items[i].position < items[j].position
	})
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Index < warnings[j].Index
	})

	usages := make([]model.Usage, len(items))
	for i, item := range items {
		usages[i] = item.usage
	}

	used := make(map[string]bool)
	for i := range usages {
		if usages[i].Classification == model.ClassificationDefined {
			used[usages[i].Canonical] = true
		}
	}
	c.reg.TagUnused(used)

	return usages, warnings
}

func (c *Classifier) classifyOne(cand model.RawUsage, position int) (*model.Usage, *model.Warning) {
	token := strings.TrimSpace(cand.Token)
	if token == "" {
		return nil, &model.Warning{
			Kind:   model.WarningMalformedCandidate,
			Record: "usage",
			Index:  position,
			Detail: "empty token",
		}
	}
	rank, err := c.index.RankOf(cand.ParagraphID)
	if err != nil {
		return nil, &model.Warning{
			Kind:   model.WarningUnknownParagraph,
			Record: "usage",
			Index:  position,
			Detail: fmt.Sprintf("paragraph %q not in document", cand.ParagraphID),
		}
	}

	key := c.canon.Canonicalize(token)
	usage := &model.Usage{
		Token:       token,
		Canonical:   key,
		Sentence:    cand.Sentence,
		ParagraphID: cand.ParagraphID,
		Rank:        rank,
		Issues:      []model.IssueType{},
	}

	switch {
	case c.reg.Has(key):
		usage.Classification = model.ClassificationDefined
		first := c.reg.FirstDefined(key)
		usage.DefLocator = &model.DefLocator{
			TermCanonical: key,
			ParagraphID:   first.ParagraphID,
		}
		if token != first.TermRaw && strings.EqualFold(token, first.TermRaw) {
			usage.IsCaseDrift = true
			usage.Issues = append(usage.Issues, model.IssueCaseDrift)
		}
		if minRank, ok := c.reg.MinRank(key); ok && rank < minRank {
			usage.Issues = append(usage.Issues, model.IssueUseBeforeDefine)
		}

	case c.canon.IsAcronym(token):
		usage.Classification = model.ClassificationAcronym

	case c.noise[key]:
		usage.Classification = model.ClassificationNoise

	default:
		usage.Classification = model.ClassificationUndefined
		usage.Issues = append(usage.Issues, model.IssueMissingDefinition)
	}

	return usage, nil
}
