package vault

import (
	"context"
	"sync"
	"time"

	"vault-reconciler/core/metrics"
	"vault-reconciler/core/warehouse"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSampleSize caps captured missing records per comparison when no
// explicit sample size is configured.
const DefaultSampleSize = 10

// Options tunes a reconciliation run.
type Options struct {
	// SampleSize caps captured missing records per comparison.
	SampleSize int
	// Parallelism bounds how many entities are validated at once.
	Parallelism int
	// QueryTimeout bounds each individual warehouse query.
	QueryTimeout time.Duration
}

// Engine validates a configured entity list against the warehouse.
type Engine struct {
	exec   warehouse.Executor
	logger *zap.Logger
	opts   Options
}

// timedExecutor instruments every warehouse query with counters and
// latency observations.
type timedExecutor struct {
	warehouse.Executor
}

func (t *timedExecutor) Execute(ctx context.Context, query string) (*warehouse.Result, error) {
	start := time.Now()
	result, err := t.Executor.Execute(ctx, query)
	metrics.QueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.QueriesTotal.WithLabelValues("success").Inc()
	return result, nil
}

// NewEngine creates an engine over an acquired executor. The caller owns the
// executor's lifecycle; the engine never closes it.
func NewEngine(exec warehouse.Executor, logger *zap.Logger, opts Options) *Engine {
	if opts.SampleSize <= 0 {
		opts.SampleSize = DefaultSampleSize
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	return &Engine{
		exec:   &timedExecutor{Executor: exec},
		logger: logger,
		opts:   opts,
	}
}

// Run validates every entity and assembles the report in configuration
// order. A failing entity yields a FAILED row; the run always completes.
func (e *Engine) Run(ctx context.Context, entities []EntityConfig) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Results:   make([]ValidationResult, len(entities)),
	}

	e.logger.Info("Starting reconciliation run",
		zap.String("run_id", report.RunID),
		zap.Int("entities", len(entities)),
		zap.Int("parallelism", e.opts.Parallelism),
	)

	counter := NewLayerCounter(e.exec, e.opts.QueryTimeout)
	finder := NewMismatchFinder(e.exec, e.opts.QueryTimeout, e.opts.SampleSize, report.RunID)

	if e.opts.Parallelism > 1 && len(entities) > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, e.opts.Parallelism)
		for i := range entities {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				report.Results[idx] = e.validateEntity(ctx, &entities[idx], counter, finder)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range entities {
			report.Results[i] = e.validateEntity(ctx, &entities[i], counter, finder)
		}
	}

	report.FinishedAt = time.Now().UTC()
	report.Summary = summarize(report.Results)
	metrics.RunDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())

	e.logger.Info("Reconciliation run finished",
		zap.String("run_id", report.RunID),
		zap.Int("validated", report.Summary.Validated),
		zap.Int("failed", report.Summary.Failed),
		zap.Int64("total_rows_lost", report.Summary.TotalRowsLost),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}

func (e *Engine) validateEntity(ctx context.Context, cfg *EntityConfig, counter *LayerCounter, finder *MismatchFinder) ValidationResult {
	log := e.logger.With(zap.String("entity", cfg.DisplayName()))

	if err := cfg.Validate(); err != nil {
		log.Warn("Entity configuration rejected", zap.Error(err))
		metrics.EntitiesValidated.WithLabelValues("failed").Inc()
		return failedResult(cfg, err)
	}

	log.Info("Validating entity",
		zap.String("source", cfg.SourceTable),
		zap.String("hub", cfg.HubTableLabel()),
		zap.String("satellite", cfg.SatelliteTable),
		zap.String("bizview", cfg.BizviewTable),
	)

	m, err := e.measure(ctx, cfg, counter, finder)
	if err != nil {
		log.Error("Entity validation failed", zap.Error(err))
		metrics.EntitiesValidated.WithLabelValues("failed").Inc()
		return failedResult(cfg, err)
	}

	result, err := compileResult(cfg, m)
	if err != nil {
		log.Error("Entity validation failed", zap.Error(err))
		metrics.EntitiesValidated.WithLabelValues("failed").Inc()
		return failedResult(cfg, err)
	}

	metrics.EntitiesValidated.WithLabelValues("validated").Inc()
	metrics.RowsLost.WithLabelValues(cfg.DisplayName()).Set(float64(*result.TotalRowsLost))
	log.Info("Entity validated",
		zap.Int64("total_rows_lost", *result.TotalRowsLost),
		zap.Int64("deleted", *result.DeletedRecords),
	)
	return result
}

func (e *Engine) measure(ctx context.Context, cfg *EntityConfig, counter *LayerCounter, finder *MismatchFinder) (*entityMeasurements, error) {
	m := &entityMeasurements{mismatches: make(map[string]*Mismatch)}

	var err error
	if m.counts.Source, err = counter.CountSource(ctx, cfg); err != nil {
		return nil, err
	}
	if m.counts.Deleted, err = counter.CountDeleted(ctx, cfg); err != nil {
		return nil, err
	}

	if cfg.IsLink() {
		err = e.measureLink(ctx, cfg, m, counter, finder)
	} else {
		err = e.measureHub(ctx, cfg, m, counter, finder)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (e *Engine) measureHub(ctx context.Context, cfg *EntityConfig, m *entityMeasurements, counter *LayerCounter, finder *MismatchFinder) error {
	var err error
	if m.counts.Hub, err = counter.CountLayer(ctx, cfg.HubTable); err != nil {
		return err
	}
	if m.counts.Satellite, err = counter.CountLayer(ctx, cfg.SatelliteTable); err != nil {
		return err
	}
	if m.counts.Bizview, err = counter.CountLayer(ctx, cfg.BizviewTable); err != nil {
		return err
	}

	srcQuery := cfg.CustomComparisonQuery
	if srcQuery == "" {
		if srcQuery, err = hubSourceToHubQuery(cfg); err != nil {
			return err
		}
	}
	mm, err := finder.Find(ctx, cfg, TransitionSourceToHub, cfg.HubTable, srcQuery)
	if err != nil {
		return err
	}
	m.addMismatch(TransitionSourceToHub, mm)

	q, err := hubToSatelliteQuery(cfg)
	if err != nil {
		return err
	}
	if mm, err = finder.Find(ctx, cfg, TransitionHubToSatellite, cfg.HubTable, q); err != nil {
		return err
	}
	m.addMismatch(TransitionHubToSatellite, mm)

	if q, err = hubSatelliteToBizviewQuery(cfg); err != nil {
		return err
	}
	if mm, err = finder.Find(ctx, cfg, TransitionSatelliteToBizview, cfg.HubTable, q); err != nil {
		return err
	}
	m.addMismatch(TransitionSatelliteToBizview, mm)

	return nil
}

func (e *Engine) measureLink(ctx context.Context, cfg *EntityConfig, m *entityMeasurements, counter *LayerCounter, finder *MismatchFinder) error {
	// The hub side of a link has no single count; the smallest hub bounds
	// how many complete link rows can exist.
	for i, hub := range cfg.HubTables {
		n, err := counter.CountLayer(ctx, hub)
		if err != nil {
			return err
		}
		if i == 0 || n < m.counts.Hub {
			m.counts.Hub = n
		}
	}

	var err error
	if m.counts.Link, err = counter.CountLayer(ctx, cfg.LinkTable); err != nil {
		return err
	}
	if m.counts.Satellite, err = counter.CountLayer(ctx, cfg.SatelliteTable); err != nil {
		return err
	}
	if m.counts.Bizview, err = counter.CountLayer(ctx, cfg.BizviewTable); err != nil {
		return err
	}

	if cfg.CustomComparisonQuery != "" {
		mm, err := finder.Find(ctx, cfg, TransitionSourceToHub, cfg.HubTableLabel(), cfg.CustomComparisonQuery)
		if err != nil {
			return err
		}
		m.addMismatch(TransitionSourceToHub, mm)
	} else {
		for i := range cfg.HubTables {
			q, err := linkSourceToHubQuery(cfg, i)
			if err != nil {
				return err
			}
			mm, err := finder.Find(ctx, cfg, TransitionSourceToHub, cfg.HubTables[i], q)
			if err != nil {
				return err
			}
			m.addMismatch(TransitionSourceToHub, mm)
		}
	}

	for i := range cfg.HubTables {
		q, err := linkHubToLinkQuery(cfg, i)
		if err != nil {
			return err
		}
		mm, err := finder.Find(ctx, cfg, TransitionHubToLink, cfg.HubTables[i], q)
		if err != nil {
			return err
		}
		m.addMismatch(TransitionHubToLink, mm)
	}

	q, err := linkToSatelliteQuery(cfg)
	if err != nil {
		return err
	}
	mm, err := finder.Find(ctx, cfg, TransitionLinkToSatellite, cfg.HubTableLabel(), q)
	if err != nil {
		return err
	}
	m.addMismatch(TransitionLinkToSatellite, mm)

	if q, err = linkSatelliteToBizviewQuery(cfg); err != nil {
		return err
	}
	if mm, err = finder.Find(ctx, cfg, TransitionSatelliteToBizview, cfg.HubTableLabel(), q); err != nil {
		return err
	}
	m.addMismatch(TransitionSatelliteToBizview, mm)

	// Hub-to-satellite has no shared column on link entities; its loss
	// metric comes from the layer counts alone.
	return nil
}
