package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Dinesh1441/carstreet-sub002/internal/dto"
	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/query"
	"github.com/Dinesh1441/carstreet-sub002/internal/repository"
)

var opportunityQuery = query.Definition{
	SearchColumns: []string{"status"},
	FilterColumns: map[string]string{
		"status": "status",
		"lead":   "lead_id",
		"car":    "car_id",
	},
	SortColumns: map[string]string{
		"createdAt":   "created_at",
		"quotedPrice": "quoted_price",
	},
	DefaultSortColumn: "created_at",
	DefaultDescending: true,
}

// OpportunityService manages sell opportunities.
type OpportunityService interface {
	Create(ctx context.Context, actorID *uint, req dto.OpportunityCreateRequest) (dto.OpportunityResponse, error)
	Get(ctx context.Context, id uint) (dto.OpportunityResponse, error)
	List(ctx context.Context, params map[string]string) ([]dto.OpportunityResponse, dto.PaginationMeta, error)
	UpdateStatus(ctx context.Context, actorID *uint, id uint, req dto.OpportunityStatusUpdateRequest) (dto.OpportunityResponse, error)
}

type opportunityService struct {
	repo      repository.OpportunityRepository
	leads     repository.LeadRepository
	activity  ActivityWriter
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewOpportunityService constructs the sell opportunity service.
func NewOpportunityService(repo repository.OpportunityRepository, leads repository.LeadRepository, activity ActivityWriter, validate *validator.Validate, logger zerolog.Logger) OpportunityService {
	return &opportunityService{
		repo:      repo,
		leads:     leads,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "opportunity_service").Logger(),
	}
}

func (s *opportunityService) Create(ctx context.Context, actorID *uint, req dto.OpportunityCreateRequest) (dto.OpportunityResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.OpportunityResponse{}, err
	}

	lead, err := s.leads.GetByID(ctx, req.LeadID)
	if err != nil {
		return dto.OpportunityResponse{}, fmt.Errorf("resolve lead %d: %w", req.LeadID, err)
	}

	op := models.SellOpportunity{
		LeadID:      lead.ID,
		CarID:       req.CarID,
		QuotedPrice: req.QuotedPrice,
		Status:      models.OpportunityStatusOpen,
	}

	if err := s.repo.Create(ctx, &op); err != nil {
		return dto.OpportunityResponse{}, fmt.Errorf("create sell opportunity: %w", err)
	}

	s.recordActivity(ctx, ActivityEntry{
		ActorID:   actorOrOwner(actorID, lead.OwnerID),
		EventType: "sell_opportunity_created",
		Summary:   fmt.Sprintf("Sell opportunity opened for lead %q", lead.Name),
		SubjectID: op.ID,
		LeadID:    &op.LeadID,
		Metadata: map[string]interface{}{
			"quotedPrice": op.QuotedPrice,
		},
	})

	return dto.NewOpportunityResponse(op), nil
}

func (s *opportunityService) Get(ctx context.Context, id uint) (dto.OpportunityResponse, error) {
	op, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.OpportunityResponse{}, err
	}
	return dto.NewOpportunityResponse(op), nil
}

func (s *opportunityService) List(ctx context.Context, params map[string]string) ([]dto.OpportunityResponse, dto.PaginationMeta, error) {
	opts := opportunityQuery.Build(params)

	ops, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, dto.PaginationMeta{}, fmt.Errorf("list sell opportunities: %w", err)
	}

	responses := make([]dto.OpportunityResponse, 0, len(ops))
	for _, op := range ops {
		responses = append(responses, dto.NewOpportunityResponse(op))
	}

	return responses, dto.NewPaginationMeta(opts.Page, opts.Limit, total), nil
}

func (s *opportunityService) UpdateStatus(ctx context.Context, actorID *uint, id uint, req dto.OpportunityStatusUpdateRequest) (dto.OpportunityResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.OpportunityResponse{}, err
	}

	previous, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.OpportunityResponse{}, err
	}

	op, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return dto.OpportunityResponse{}, err
	}

	s.recordActivity(ctx, ActivityEntry{
		ActorID:   actorID,
		EventType: "sell_opportunity_status_updated",
		Summary:   fmt.Sprintf("Sell opportunity #%d status changed from %s to %s", op.ID, previous.Status, op.Status),
		SubjectID: op.ID,
		LeadID:    &op.LeadID,
		Metadata: map[string]interface{}{
			"oldStatus": previous.Status,
			"newStatus": op.Status,
		},
	})

	return dto.NewOpportunityResponse(op), nil
}

func (s *opportunityService) recordActivity(ctx context.Context, entry ActivityEntry) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("event_type", entry.EventType).Msg("audit write failed")
	}
}
