package sources

import (
	"context"
	"errors"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pagewatch/lib/models"
)

// ErrDatabaseUnavailable marks runs that asked for the database source
// without a configured, reachable tracker database.
var ErrDatabaseUnavailable = errors.New("tracker database unavailable")

// DatabaseSource queries the tracker table for active, non-expired rows.
// Each row maps 1:1 to a TrackedItem with the baseline carried inline.
type DatabaseSource struct {
	log *zap.Logger
	db  *gorm.DB
}

func NewDatabaseSource(lc fx.Lifecycle, log *zap.Logger, db *gorm.DB) *DatabaseSource {
	return &DatabaseSource{log: log, db: db}
}

func (s *DatabaseSource) Available() bool {
	return s.db != nil
}

func (s *DatabaseSource) Load(ctx context.Context, interval string) (models.TrackedItems, error) {
	if s.db == nil {
		return nil, ErrDatabaseUnavailable
	}

	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if interval != "all" {
		query = query.Where("check_interval = ?", interval)
	}
	today := time.Now().Format("2006-01-02")
	query = query.Where("(expires_at IS NULL OR expires_at = '' OR expires_at > ?)", today)

	var rows models.TrackedURLs
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make(models.TrackedItems, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].Item())
	}
	return items, nil
}
