package lib

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"pagewatch/lib/baselines"
	"pagewatch/lib/extract"
	"pagewatch/lib/models"
	"pagewatch/senders"
)

type Extractor interface {
	Extract(ctx context.Context, item *models.TrackedItem) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, item *models.TrackedItem, oldContent, newContent string) senders.Result
}

type StoreResolver interface {
	For(item *models.TrackedItem) baselines.Store
}

// Reconciler performs one check: extract, compare against the baseline,
// notify on change, persist. Every collaborator failure is converted into an
// outcome; nothing here is fatal to the run.
type Reconciler struct {
	log       *zap.Logger
	extractor Extractor
	stores    StoreResolver
	notifier  Notifier

	now func() time.Time
}

func NewReconciler(lc fx.Lifecycle, log *zap.Logger, extractor *extract.Extractor, stores *baselines.Stores, notifier *senders.Notifier) *Reconciler {
	return &Reconciler{
		log:       log,
		extractor: extractor,
		stores:    stores,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (r *Reconciler) Reconcile(ctx context.Context, item *models.TrackedItem) models.Outcome {
	log := r.log.Sugar()
	log.Infow("Checking "+item.DisplayName(),
		"url", item.URL, "source", item.Source, "render", item.RenderMode)

	if r.expired(item) {
		log.Infof("Tracking expired on %s, skipping", item.ExpiresOn)
		return models.OutcomeExpired
	}

	content, err := r.extractor.Extract(ctx, item)
	if err != nil || content == "" {
		return models.OutcomeFetchFailed
	}

	store := r.stores.For(item)

	baseline, found, err := store.Read(item)
	if err != nil {
		// Treat an unreadable baseline like a missing one rather than
		// aborting the item.
		log.Warnf("Failed to read baseline for %s: %v", item.DisplayName(), err)
		found = false
	}

	if !found {
		log.Info("First check - saving baseline")
		if err := store.Write(ctx, item, content, false); err != nil {
			log.Warnf("Failed to save baseline: %v", err)
		}
		return models.OutcomeNewBaseline
	}

	if content != baseline {
		log.Info("Change detected")
		if item.NotifyEmail != "" {
			r.notifier.Notify(ctx, item, baseline, content)
		}
		// Notification and persistence are independent best-effort side
		// effects: a failed or skipped email never blocks the baseline write.
		if err := store.Write(ctx, item, content, true); err != nil {
			log.Warnf("Failed to update baseline: %v", err)
		}
		return models.OutcomeChanged
	}

	if err := store.Touch(ctx, item); err != nil {
		log.Debugf("Failed to touch %s: %v", item.DisplayName(), err)
	}
	log.Info("No changes")
	return models.OutcomeUnchanged
}

// expired reports whether today is strictly past the item's expiry date.
// Malformed dates count as never expiring.
func (r *Reconciler) expired(item *models.TrackedItem) bool {
	if item.ExpiresOn == "" {
		return false
	}

	expiry, err := time.ParseInLocation("2006-01-02", item.ExpiresOn, time.Local)
	if err != nil {
		r.log.Sugar().Warnf("Invalid date format: %s, expected YYYY-MM-DD", item.ExpiresOn)
		return false
	}

	y, m, d := r.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return today.After(expiry)
}
