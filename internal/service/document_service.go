package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Dinesh1441/carstreet-sub002/internal/dto"
	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/query"
	"github.com/Dinesh1441/carstreet-sub002/internal/repository"
)

var documentQuery = query.Definition{
	SearchColumns: []string{"title", "file_name"},
	FilterColumns: map[string]string{
		"status": "status",
		"lead":   "lead_id",
	},
	SortColumns: map[string]string{
		"createdAt": "created_at",
		"title":     "title",
	},
	DefaultSortColumn: "created_at",
	DefaultDescending: true,
}

// DocumentService tracks customer documents held in external storage.
type DocumentService interface {
	Create(ctx context.Context, actorID *uint, req dto.DocumentCreateRequest) (dto.DocumentResponse, error)
	Get(ctx context.Context, id uint) (dto.DocumentResponse, error)
	List(ctx context.Context, params map[string]string) ([]dto.DocumentResponse, dto.PaginationMeta, error)
	UpdateStatus(ctx context.Context, actorID *uint, id uint, req dto.DocumentStatusUpdateRequest) (dto.DocumentResponse, error)
}

type documentService struct {
	repo      repository.DocumentRepository
	activity  ActivityWriter
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDocumentService constructs the document service.
func NewDocumentService(repo repository.DocumentRepository, activity ActivityWriter, validate *validator.Validate, logger zerolog.Logger) DocumentService {
	return &documentService{
		repo:      repo,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "document_service").Logger(),
	}
}

func (s *documentService) Create(ctx context.Context, actorID *uint, req dto.DocumentCreateRequest) (dto.DocumentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DocumentResponse{}, err
	}

	doc := models.Document{
		Title:      strings.TrimSpace(req.Title),
		FileName:   strings.TrimSpace(req.FileName),
		FileSize:   req.FileSize,
		StorageURL: strings.TrimSpace(req.StorageURL),
		Status:     models.DocumentStatusPending,
		LeadID:     req.LeadID,
	}

	if err := s.repo.Create(ctx, &doc); err != nil {
		return dto.DocumentResponse{}, fmt.Errorf("create document: %w", err)
	}

	s.recordActivity(ctx, ActivityEntry{
		ActorID:   actorID,
		EventType: "document_uploaded",
		Summary:   fmt.Sprintf("Document %q was uploaded", doc.Title),
		SubjectID: doc.ID,
		LeadID:    doc.LeadID,
		Metadata: map[string]interface{}{
			"title":    doc.Title,
			"fileName": doc.FileName,
			"fileSize": doc.FileSize,
		},
	})

	return dto.NewDocumentResponse(doc), nil
}

func (s *documentService) Get(ctx context.Context, id uint) (dto.DocumentResponse, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.DocumentResponse{}, err
	}
	return dto.NewDocumentResponse(doc), nil
}

func (s *documentService) List(ctx context.Context, params map[string]string) ([]dto.DocumentResponse, dto.PaginationMeta, error) {
	opts := documentQuery.Build(params)

	docs, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, dto.PaginationMeta{}, fmt.Errorf("list documents: %w", err)
	}

	responses := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, dto.NewDocumentResponse(doc))
	}

	return responses, dto.NewPaginationMeta(opts.Page, opts.Limit, total), nil
}

func (s *documentService) UpdateStatus(ctx context.Context, actorID *uint, id uint, req dto.DocumentStatusUpdateRequest) (dto.DocumentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DocumentResponse{}, err
	}

	previous, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.DocumentResponse{}, err
	}

	doc, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return dto.DocumentResponse{}, err
	}

	s.recordActivity(ctx, ActivityEntry{
		ActorID:   actorID,
		EventType: "document_status_updated",
		Summary:   fmt.Sprintf("Document %q status changed from %s to %s", doc.Title, previous.Status, doc.Status),
		SubjectID: doc.ID,
		LeadID:    doc.LeadID,
		Metadata: map[string]interface{}{
			"oldStatus": previous.Status,
			"newStatus": doc.Status,
		},
	})

	return dto.NewDocumentResponse(doc), nil
}

func (s *documentService) recordActivity(ctx context.Context, entry ActivityEntry) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("event_type", entry.EventType).Msg("audit write failed")
	}
}
