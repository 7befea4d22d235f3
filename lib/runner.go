package lib

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"pagewatch/lib/models"
	"pagewatch/lib/sources"
)

type SourceMode string

const (
	ModeFile SourceMode = "yaml"
	ModeDB   SourceMode = "db"
	ModeBoth SourceMode = "both"
)

func (m SourceMode) includesFile() bool { return m == ModeFile || m == ModeBoth }
func (m SourceMode) includesDB() bool   { return m == ModeDB || m == ModeBoth }

type RunOptions struct {
	Interval string
	Mode     SourceMode
}

type ItemSource interface {
	Load(ctx context.Context, interval string) (models.TrackedItems, error)
}

type reconciler interface {
	Reconcile(ctx context.Context, item *models.TrackedItem) models.Outcome
}

// Runner merges tracked items from the requested sources and reconciles them
// one at a time, in merge order. Detected changes are expected behavior and
// never fail the run; Run errors only when the merged list is empty or when
// database mode was requested without a usable database.
type Runner struct {
	log        *zap.Logger
	file       ItemSource
	db         ItemSource
	reconciler reconciler
}

func NewRunner(lc fx.Lifecycle, log *zap.Logger, file *sources.FileSource, db *sources.DatabaseSource, rec *Reconciler) *Runner {
	return &Runner{log: log, file: file, db: db, reconciler: rec}
}

type runMetrics struct {
	checked      int
	expired      int
	fetchFailed  int
	newBaselines int
	changed      int
	unchanged    int
}

func (m *runMetrics) observe(outcome models.Outcome) {
	m.checked++
	switch outcome {
	case models.OutcomeExpired:
		m.expired++
	case models.OutcomeFetchFailed:
		m.fetchFailed++
	case models.OutcomeNewBaseline:
		m.newBaselines++
	case models.OutcomeChanged:
		m.changed++
	case models.OutcomeUnchanged:
		m.unchanged++
	}
}

func (r *Runner) Run(ctx context.Context, opts RunOptions) error {
	log := r.log.Sugar()
	log.Infow("Starting URL monitor", "interval", opts.Interval, "source", opts.Mode)

	items, err := r.mergeItems(ctx, opts)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no URLs configured for interval: %s", opts.Interval)
	}

	log.Infof("Checking %d URL(s) total", len(items))

	var metrics runMetrics
	for _, item := range items {
		metrics.observe(r.reconciler.Reconcile(ctx, item))
	}

	log.Infow("Summary",
		"urls_checked", metrics.checked,
		"changes_detected", metrics.changed,
		"new_baselines", metrics.newBaselines,
		"unchanged", metrics.unchanged,
		"expired", metrics.expired,
		"fetch_failed", metrics.fetchFailed,
	)
	return nil
}

func (r *Runner) mergeItems(ctx context.Context, opts RunOptions) (models.TrackedItems, error) {
	log := r.log.Sugar()
	var items models.TrackedItems

	if opts.Mode.includesFile() {
		fromFile, err := r.file.Load(ctx, opts.Interval)
		if err != nil {
			log.Warnf("Error loading urls config: %v", err)
		} else {
			log.Infof("Loaded %d URL(s) from urls config", len(fromFile))
			items = append(items, fromFile...)
		}
	}

	if opts.Mode.includesDB() {
		fromDB, err := r.db.Load(ctx, opts.Interval)
		switch {
		case err != nil && opts.Mode == ModeDB:
			return nil, fmt.Errorf("database source required: %w", err)
		case err != nil:
			log.Warnf("Error loading from database: %v", err)
		default:
			log.Infof("Loaded %d URL(s) from database", len(fromDB))
			items = append(items, fromDB...)
		}
	}

	return items, nil
}
