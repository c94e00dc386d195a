package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mwalden/termlens/internal/model"
)

// Analyzer turns one document source (path or URL) into a report.
type Analyzer interface {
	AnalyzeSource(ctx context.Context, source string) (*model.Report, error)
}

// BatchResult is the outcome of analyzing one source.
type BatchResult struct {
	Source string
	Report *model.Report
	Err    error
}

// BatchProcessor analyzes many documents concurrently over a worker pool.
type BatchProcessor struct {
	analyzer Analyzer
	workers  int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(analyzer Analyzer, workers int) *BatchProcessor {
	if workers < 1 {
		workers = 1
	}
	return &BatchProcessor{analyzer: analyzer, workers: workers}
}

// ProcessFile reads sources from a file (one per line, # comments and
// blank lines skipped) and processes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]BatchResult, error) {
	sources, err := ReadSources(path)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources found in %s", path)
	}
	return b.Process(ctx, sources), nil
}

// Process analyzes the sources in parallel. Results come back in the
// input order regardless of which worker finished first.
func (b *BatchProcessor) Process(ctx context.Context, sources []string) []BatchResult {
	pool := NewPool(ctx, b.workers)
	pool.Start()
	for i, source := range sources {
		pool.Submit(&batchJob{analyzer: b.analyzer, source: source, order: i})
	}

	raw := pool.Wait()
	ordered := make([]*batchJobResult, 0, len(raw))
	for _, result := range raw {
		ordered = append(ordered, result.(*batchJobResult))
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].order < ordered[j].order })

	results := make([]BatchResult, len(ordered))
	for i, r := range ordered {
		results[i] = BatchResult{Source: r.source, Report: r.report, Err: r.err}
	}
	return results
}

// ReadSources loads document sources from a list file.
func ReadSources(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var sources []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sources = append(sources, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return sources, nil
}

type batchJob struct {
	analyzer Analyzer
	source   string
	order    int
}

type batchJobResult struct {
	source string
	order  int
	report *model.Report
	err    error
}

func (r *batchJobResult) Err() error { return r.err }

func (j *batchJob) Execute(ctx context.Context) Result {
	report, err := j.analyzer.AnalyzeSource(ctx, j.source)
	return &batchJobResult{source: j.source, order: j.order, report: report, err: err}
}
