package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/query"
)

// ActivityRepository persists the audit trail. The contract is append-only:
// there is deliberately no update or delete operation.
type ActivityRepository interface {
	Create(ctx context.Context, event *models.ActivityEvent) error
	ListByLead(ctx context.Context, leadID uint, opts query.Options) ([]models.ActivityEvent, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs the activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, event *models.ActivityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *activityRepository) ListByLead(ctx context.Context, leadID uint, opts query.Options) ([]models.ActivityEvent, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.ActivityEvent{}).Where("lead_id = ?", leadID)
	base = opts.Apply(base)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.ActivityEvent
	err := base.Preload("Actor").
		Order(opts.OrderClause()).
		Offset(opts.Skip).
		Limit(opts.Limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}
