package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/query"
)

// DocumentRepository exposes persistence helpers for customer documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uint) (models.Document, error)
	UpdateStatus(ctx context.Context, id uint, status string) (models.Document, error)
	List(ctx context.Context, opts query.Options) ([]models.Document, int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository constructs the document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) GetByID(ctx context.Context, id uint) (models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

func (r *documentRepository) UpdateStatus(ctx context.Context, id uint, status string) (models.Document, error) {
	update := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("id = ?", id).
		Update("status", status)
	if update.Error != nil {
		return models.Document{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.Document{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *documentRepository) List(ctx context.Context, opts query.Options) ([]models.Document, int64, error) {
	base := opts.Apply(r.db.WithContext(ctx).Model(&models.Document{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []models.Document
	if err := base.Order(opts.OrderClause()).Offset(opts.Skip).Limit(opts.Limit).Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}
