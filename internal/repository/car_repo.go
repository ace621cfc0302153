package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/query"
)

// CarRepository exposes persistence helpers for inventory vehicles.
type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id uint) (models.Car, error)
	UpdateStatus(ctx context.Context, id uint, status string) (models.Car, error)
	List(ctx context.Context, opts query.Options) ([]models.Car, int64, error)
}

type carRepository struct {
	db *gorm.DB
}

// NewCarRepository constructs the car repository.
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *carRepository) GetByID(ctx context.Context, id uint) (models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return models.Car{}, err
	}
	return car, nil
}

func (r *carRepository) UpdateStatus(ctx context.Context, id uint, status string) (models.Car, error) {
	update := r.db.WithContext(ctx).Model(&models.Car{}).
		Where("id = ?", id).
		Update("status", status)
	if update.Error != nil {
		return models.Car{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.Car{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *carRepository) List(ctx context.Context, opts query.Options) ([]models.Car, int64, error) {
	base := opts.Apply(r.db.WithContext(ctx).Model(&models.Car{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cars []models.Car
	if err := base.Order(opts.OrderClause()).Offset(opts.Skip).Limit(opts.Limit).Find(&cars).Error; err != nil {
		return nil, 0, err
	}

	return cars, total, nil
}
