package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/query"
)

// OpportunityRepository exposes persistence helpers for sell opportunities.
type OpportunityRepository interface {
	Create(ctx context.Context, op *models.SellOpportunity) error
	GetByID(ctx context.Context, id uint) (models.SellOpportunity, error)
	UpdateStatus(ctx context.Context, id uint, status string) (models.SellOpportunity, error)
	List(ctx context.Context, opts query.Options) ([]models.SellOpportunity, int64, error)
}

type opportunityRepository struct {
	db *gorm.DB
}

// NewOpportunityRepository constructs the sell opportunity repository.
func NewOpportunityRepository(db *gorm.DB) OpportunityRepository {
	return &opportunityRepository{db: db}
}

func (r *opportunityRepository) Create(ctx context.Context, op *models.SellOpportunity) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *opportunityRepository) GetByID(ctx context.Context, id uint) (models.SellOpportunity, error) {
	var op models.SellOpportunity
	if err := r.db.WithContext(ctx).First(&op, id).Error; err != nil {
		return models.SellOpportunity{}, err
	}
	return op, nil
}

func (r *opportunityRepository) UpdateStatus(ctx context.Context, id uint, status string) (models.SellOpportunity, error) {
	update := r.db.WithContext(ctx).Model(&models.SellOpportunity{}).
		Where("id = ?", id).
		Update("status", status)
	if update.Error != nil {
		return models.SellOpportunity{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.SellOpportunity{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *opportunityRepository) List(ctx context.Context, opts query.Options) ([]models.SellOpportunity, int64, error) {
	base := opts.Apply(r.db.WithContext(ctx).Model(&models.SellOpportunity{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ops []models.SellOpportunity
	if err := base.Order(opts.OrderClause()).Offset(opts.Skip).Limit(opts.Limit).Find(&ops).Error; err != nil {
		return nil, 0, err
	}

	return ops, total, nil
}
