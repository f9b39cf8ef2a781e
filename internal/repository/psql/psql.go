package psql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleetfuel/internal/domain/entity"
)

type GormSummaryRepo struct {
	db *gorm.DB
}

func NewGormSummaryRepo(db *gorm.DB) *GormSummaryRepo {
	return &GormSummaryRepo{db: db}
}

// SaveSummaries upserts on (site, day, unit_id) so re-running a job
// overwrites rather than duplicates.
func (r *GormSummaryRepo) SaveSummaries(ctx context.Context, summaries []entity.GroupSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "site"}, {Name: "day"}, {Name: "unit_id"}},
			UpdateAll: true,
		}).
		Create(&summaries).Error
}

func (r *GormSummaryRepo) ListSummaries(ctx context.Context, site, day string) ([]entity.GroupSummary, error) {
	var summaries []entity.GroupSummary
	err := r.db.WithContext(ctx).
		Where("site = ? AND day = ?", site, day).
		Order("unit_id").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *GormSummaryRepo) GetSummary(ctx context.Context, key entity.GroupKey) (*entity.GroupSummary, error) {
	var summary entity.GroupSummary
	err := r.db.WithContext(ctx).
		First(&summary, "site = ? AND day = ? AND unit_id = ?", key.Site, key.Day, key.UnitID).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
