package docgo

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hupe1980/docgo/docset"
	"github.com/hupe1980/docgo/internal/resource"
	"github.com/hupe1980/docgo/internal/scan"
	"github.com/hupe1980/docgo/model"
	"github.com/hupe1980/docgo/query"
)

// Engine executes queries against caller-supplied in-memory snapshots and
// re-evaluates result-set membership when local writes change a document.
//
// An Engine is safe for concurrent use.
type Engine struct {
	scanWorkers int
	controller  *resource.Controller
	plans       *lru.Cache[string, *queryPlan]
	metrics     MetricsCollector
	logger      *Logger
	closed      atomic.Bool
}

// queryPlan is the cached execution state for one canonical query: the
// comparator composed from its derived ordering. Listener loops rebuild
// equal query values on every write; caching by canonical ID keeps them
// from recomposing comparators each time.
type queryPlan struct {
	comparator query.DocumentComparator
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)

	maxScans := o.maxConcurrentScans
	if maxScans <= 0 {
		maxScans = int64(runtime.GOMAXPROCS(0))
	}

	// applyOptions guarantees a positive size, so lru.New cannot fail.
	plans, _ := lru.New[string, *queryPlan](o.planCacheSize)

	return &Engine{
		scanWorkers: o.scanWorkers,
		controller: resource.NewController(resource.Config{
			MaxConcurrentScans:     maxScans,
			ReevaluationsPerSecond: o.reevalPerSecond,
			ReevaluationBurst:      o.reevalBurst,
		}),
		plans:   plans,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}
}

// Execute runs a query against a snapshot of documents and returns the
// matches sorted by the query's derived ordering, truncated to its limit.
//
// The snapshot is read-only to Execute and is partitioned across scan
// workers; the returned slice is freshly allocated. Execute blocks on a
// scan slot when the engine is already running its maximum number of
// concurrent scans.
func (e *Engine) Execute(ctx context.Context, q query.Query, snapshot []model.Document) ([]model.Document, error) {
	start := time.Now()
	if err := e.ensureOpen(); err != nil {
		e.metrics.RecordExecute(0, time.Since(start), err)
		e.logger.LogExecute(ctx, q.CanonicalID(), 0, err)
		return nil, err
	}

	if err := e.controller.AcquireScan(ctx); err != nil {
		err = fmt.Errorf("docgo: acquire scan slot: %w", err)
		e.metrics.RecordExecute(0, time.Since(start), err)
		e.logger.LogExecute(ctx, q.CanonicalID(), 0, err)
		return nil, err
	}
	defer e.controller.ReleaseScan()

	plan := e.plan(q)

	matches, err := scan.Scan(ctx, snapshot, q.Matches, e.scanWorkers)
	if err != nil {
		e.metrics.RecordExecute(0, time.Since(start), err)
		e.logger.LogExecute(ctx, q.CanonicalID(), 0, err)
		return nil, err
	}

	results := make([]model.Document, 0, matches.Cardinality())
	for i := range matches.Iterate() {
		results = append(results, snapshot[i])
	}
	slices.SortFunc(results, plan.comparator)

	if q.HasLimit() && int64(len(results)) > q.Limit() {
		results = results[:q.Limit()]
	}

	e.metrics.RecordExecute(len(results), time.Since(start), nil)
	e.logger.LogExecute(ctx, q.CanonicalID(), len(results), nil)
	return results, nil
}

// Reevaluate updates a result set after a local write to a single document:
// the document is added (or replaced) when it matches the query and removed
// when it does not. The input set is unchanged; the updated set is returned.
//
// Reevaluate honors the rate configured with WithReevaluationRate, blocking
// until the limiter admits the call or ctx is canceled.
func (e *Engine) Reevaluate(ctx context.Context, q query.Query, set docset.DocumentSet, doc model.Document) (docset.DocumentSet, error) {
	start := time.Now()
	if err := e.ensureOpen(); err != nil {
		e.metrics.RecordReevaluate(time.Since(start), err)
		e.logger.LogReevaluate(ctx, q.CanonicalID(), false, err)
		return set, err
	}

	if err := e.controller.ThrottleReevaluation(ctx); err != nil {
		err = fmt.Errorf("docgo: throttle reevaluation: %w", err)
		e.metrics.RecordReevaluate(time.Since(start), err)
		e.logger.LogReevaluate(ctx, q.CanonicalID(), false, err)
		return set, err
	}

	matched := q.Matches(doc)
	if matched {
		set = set.Add(doc)
	} else {
		set = set.Delete(doc.Key())
	}

	e.metrics.RecordReevaluate(time.Since(start), nil)
	e.logger.LogReevaluate(ctx, q.CanonicalID(), matched, nil)
	return set, nil
}

// NewDocumentSet returns an empty document set ordered by the query's
// derived ordering, ready to be maintained with Reevaluate.
func (e *Engine) NewDocumentSet(q query.Query) docset.DocumentSet {
	return docset.New(e.plan(q).comparator)
}

func (e *Engine) plan(q query.Query) *queryPlan {
	id := q.CanonicalID()
	if p, ok := e.plans.Get(id); ok {
		e.metrics.RecordPlanCache(true)
		return p
	}
	e.metrics.RecordPlanCache(false)

	p := &queryPlan{comparator: q.Comparator()}
	e.plans.Add(id, p)
	return p
}

func (e *Engine) ensureOpen() error {
	if e.closed.Load() {
		return ErrClosed
	}
	return nil
}
