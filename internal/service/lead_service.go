package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/Dinesh1441/carstreet-sub002/internal/dto"
	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/query"
	"github.com/Dinesh1441/carstreet-sub002/internal/repository"
)

var leadQuery = query.Definition{
	SearchColumns: []string{"name", "phone", "email"},
	FilterColumns: map[string]string{
		"stage":  "stage",
		"source": "source",
		"owner":  "owner_id",
	},
	SortColumns: map[string]string{
		"createdAt": "created_at",
		"name":      "name",
		"stage":     "stage",
	},
	DefaultSortColumn: "created_at",
	DefaultDescending: true,
}

// LeadService manages leads and their pipeline stage.
type LeadService interface {
	Create(ctx context.Context, actorID *uint, req dto.LeadCreateRequest) (dto.LeadResponse, error)
	Get(ctx context.Context, id uint) (dto.LeadResponse, error)
	List(ctx context.Context, params map[string]string) ([]dto.LeadResponse, dto.PaginationMeta, error)
	UpdateStage(ctx context.Context, actorID *uint, id uint, req dto.LeadStageUpdateRequest) (dto.LeadResponse, error)
	AddNote(ctx context.Context, actorID *uint, id uint, req dto.LeadNoteRequest) (dto.LeadResponse, error)
}

type leadService struct {
	repo       repository.LeadRepository
	activity   ActivityWriter
	validator  *validator.Validate
	notePolicy *bluemonday.Policy
	logger     zerolog.Logger
}

// NewLeadService constructs the lead service.
func NewLeadService(repo repository.LeadRepository, activity ActivityWriter, validate *validator.Validate, logger zerolog.Logger) LeadService {
	return &leadService{
		repo:       repo,
		activity:   activity,
		validator:  validate,
		notePolicy: bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "lead_service").Logger(),
	}
}

func (s *leadService) Create(ctx context.Context, actorID *uint, req dto.LeadCreateRequest) (dto.LeadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LeadResponse{}, err
	}

	lead := models.Lead{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Source:  strings.TrimSpace(req.Source),
		Stage:   models.LeadStageNew,
		OwnerID: req.OwnerID,
	}

	if err := s.repo.Create(ctx, &lead); err != nil {
		return dto.LeadResponse{}, fmt.Errorf("create lead: %w", err)
	}

	s.recordActivity(ctx, ActivityEntry{
		ActorID:   actorOrOwner(actorID, lead.OwnerID),
		EventType: "lead_created",
		Summary:   fmt.Sprintf("Lead %q was created", lead.Name),
		SubjectID: lead.ID,
		LeadID:    &lead.ID,
		Metadata: map[string]interface{}{
			"source": lead.Source,
			"stage":  lead.Stage,
		},
	})

	return dto.NewLeadResponse(lead), nil
}

func (s *leadService) Get(ctx context.Context, id uint) (dto.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.LeadResponse{}, err
	}
	return dto.NewLeadResponse(lead), nil
}

func (s *leadService) List(ctx context.Context, params map[string]string) ([]dto.LeadResponse, dto.PaginationMeta, error) {
	opts := leadQuery.Build(params)

	leads, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, dto.PaginationMeta{}, fmt.Errorf("list leads: %w", err)
	}

	responses := make([]dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		responses = append(responses, dto.NewLeadResponse(lead))
	}

	return responses, dto.NewPaginationMeta(opts.Page, opts.Limit, total), nil
}

func (s *leadService) UpdateStage(ctx context.Context, actorID *uint, id uint, req dto.LeadStageUpdateRequest) (dto.LeadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LeadResponse{}, err
	}

	previous, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.LeadResponse{}, err
	}

	lead, err := s.repo.UpdateStage(ctx, id, req.Stage)
	if err != nil {
		return dto.LeadResponse{}, err
	}

	s.recordActivity(ctx, ActivityEntry{
		ActorID:   actorOrOwner(actorID, lead.OwnerID),
		EventType: "lead_stage_updated",
		Summary:   fmt.Sprintf("Lead %q moved from %s to %s", lead.Name, previous.Stage, lead.Stage),
		SubjectID: lead.ID,
		LeadID:    &lead.ID,
		Metadata: map[string]interface{}{
			"oldStage": previous.Stage,
			"newStage": lead.Stage,
		},
	})

	return dto.NewLeadResponse(lead), nil
}

func (s *leadService) AddNote(ctx context.Context, actorID *uint, id uint, req dto.LeadNoteRequest) (dto.LeadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LeadResponse{}, err
	}

	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.LeadResponse{}, err
	}

	note := strings.TrimSpace(s.notePolicy.Sanitize(req.Note))
	if note == "" {
		return dto.LeadResponse{}, fmt.Errorf("note is empty after sanitization")
	}

	s.recordActivity(ctx, ActivityEntry{
		ActorID:   actorOrOwner(actorID, lead.OwnerID),
		EventType: "note_added",
		Summary:   fmt.Sprintf("Note added to lead %q", lead.Name),
		SubjectID: lead.ID,
		LeadID:    &lead.ID,
		Metadata: map[string]interface{}{
			"note": note,
		},
	})

	return dto.NewLeadResponse(lead), nil
}

// recordActivity documents a mutation that has already succeeded. The audit
// write is best effort: failures are logged, never propagated.
func (s *leadService) recordActivity(ctx context.Context, entry ActivityEntry) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("event_type", entry.EventType).Msg("audit write failed")
	}
}

// actorOrOwner picks the authenticated actor, falling back to the record's
// owner; nil means a system-initiated event.
func actorOrOwner(actorID, ownerID *uint) *uint {
	if actorID != nil {
		return actorID
	}
	return ownerID
}
