package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/cache"
	"github.com/yaklabco/sharplint/pkg/fsutil"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// Runner orchestrates multi-file analysis with a lint.Engine.
type Runner struct {
	// Engine parses files and builds the analysis session.
	Engine *lint.Engine

	// Cache holds results of earlier runs. Nil disables caching.
	Cache *cache.Cache
}

// New creates a new Runner with the given engine and optional cache.
func New(engine *lint.Engine, resultCache *cache.Cache) *Runner {
	return &Runner{Engine: engine, Cache: resultCache}
}

// loaded is a file after the read/parse stage.
type loaded struct {
	path    string
	content []byte
	tree    *syntax.Tree
	key     cache.Key
	records []lint.Record
	cached  bool
	err     error
}

// Run discovers files under opts.Paths and analyzes them with one session.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Reads and parses files concurrently using a worker pool, serving
//     unchanged files from the cache
//   - Walks the remaining trees with the session
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	session, err := r.Engine.NewSession(opts.Config)
	if session == nil {
		return nil, err
	}
	if err != nil {
		// Analyzers that failed to initialize are skipped; the rest still run.
		result.Errors = append(result.Errors, err)
	}

	logger.Debug("session ready",
		logging.FieldFiles, len(files),
		logging.FieldConcurrent, session.Concurrent(),
	)

	items := r.load(ctx, files, session.Signature(), opts.Jobs)

	// Trees not served from the cache are walked together so the session
	// can parallelize across files.
	var (
		pending []int
		trees   []*syntax.Tree
	)
	for i := range items {
		if items[i].err == nil && !items[i].cached && items[i].tree != nil {
			pending = append(pending, i)
			trees = append(trees, items[i].tree)
		}
	}

	treeResults, err := session.RunAll(ctx, trees)
	if err != nil {
		result.Errors = append(result.Errors, err)
	}

	outcomes := make([]FileOutcome, len(items))
	for i := range items {
		item := &items[i]
		outcomes[i] = FileOutcome{
			Path:    item.path,
			Source:  item.content,
			Records: item.records,
			Cached:  item.cached,
			Error:   item.err,
		}
	}

	for n, idx := range pending {
		var tr *lint.TreeResult
		if n < len(treeResults) {
			tr = treeResults[n]
		}
		outcome := &outcomes[idx]
		if tr == nil {
			outcome.Cancelled = true
			continue
		}

		tr.Diagnostics.Sort()
		outcome.Records = tr.Diagnostics.Records()
		outcome.Faults = tr.Faults
		outcome.Cancelled = tr.Cancelled

		for _, fault := range tr.Faults {
			logger.Warn("analyzer fault",
				logging.FieldPath, fault.Path,
				logging.FieldAnalyzer, fault.Analyzer,
				logging.FieldPanic, fault.Value,
			)
		}

		if tr.Cancelled || len(tr.Faults) > 0 {
			continue
		}
		if err := r.Cache.Put(ctx, items[idx].key, session.Signature(), outcome.Records); err != nil {
			logger.Debug("cache write failed", logging.FieldPath, outcome.Path, logging.FieldError, err)
		}
	}

	for _, outcome := range outcomes {
		if outcome.Path == "" {
			// Never loaded because the run was cancelled.
			result.Cancelled = true
			continue
		}
		result.accumulate(outcome)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldCacheHits, result.Stats.FilesCached,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	if ctx.Err() != nil {
		result.Cancelled = true
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// load reads, cache-checks and parses files on a worker pool. The returned
// slice is in input order; entries for files never reached are zero.
func (r *Runner) load(ctx context.Context, files []string, signature string, jobs int) []loaded {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	items := make([]loaded, len(files))
	workCh := make(chan int)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				if ctx.Err() != nil {
					return
				}
				items[idx] = r.loadOne(ctx, files[idx], signature)
			}
		}()
	}

	// Feed work.
	go func() {
		defer close(workCh)
		for idx := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- idx:
			}
		}
	}()

	wg.Wait()
	return items
}

func (r *Runner) loadOne(ctx context.Context, path, signature string) loaded {
	item := loaded{path: path}

	content, _, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		item.err = err
		return item
	}
	item.content = content
	item.key = cache.NewKey(signature, path, content)

	records, ok, err := r.Cache.Get(item.key)
	if err != nil {
		logging.FromContext(ctx).Debug("cache read failed", logging.FieldPath, path, logging.FieldError, err)
	}
	if ok {
		item.records = records
		item.cached = true
		return item
	}

	tree, err := r.Engine.Parser.Parse(ctx, path, content)
	if err != nil {
		item.err = fmt.Errorf("parse %s: %w", path, err)
		return item
	}
	item.tree = tree
	return item
}
