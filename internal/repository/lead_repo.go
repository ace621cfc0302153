package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/query"
)

// LeadRepository exposes persistence helpers for leads.
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id uint) (models.Lead, error)
	UpdateStage(ctx context.Context, id uint, stage string) (models.Lead, error)
	List(ctx context.Context, opts query.Options) ([]models.Lead, int64, error)
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository constructs the lead repository.
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) GetByID(ctx context.Context, id uint) (models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return models.Lead{}, err
	}
	return lead, nil
}

func (r *leadRepository) UpdateStage(ctx context.Context, id uint, stage string) (models.Lead, error) {
	update := r.db.WithContext(ctx).Model(&models.Lead{}).
		Where("id = ?", id).
		Update("stage", stage)
	if update.Error != nil {
		return models.Lead{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.Lead{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *leadRepository) List(ctx context.Context, opts query.Options) ([]models.Lead, int64, error) {
	base := opts.Apply(r.db.WithContext(ctx).Model(&models.Lead{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []models.Lead
	if err := base.Order(opts.OrderClause()).Offset(opts.Skip).Limit(opts.Limit).Find(&leads).Error; err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}
