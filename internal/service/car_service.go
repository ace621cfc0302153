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

// Relation-valued filters (brand, model) match on the reference id column so
// passing an id selects exactly one related entity.
var carQuery = query.Definition{
	SearchColumns: []string{"registration_number"},
	FilterColumns: map[string]string{
		"brand":  "brand_id",
		"model":  "model_id",
		"status": "status",
		"year":   "year",
	},
	SortColumns: map[string]string{
		"createdAt": "created_at",
		"price":     "price",
		"year":      "year",
	},
	DefaultSortColumn: "created_at",
	DefaultDescending: true,
}

// CarService manages inventory vehicles.
type CarService interface {
	Create(ctx context.Context, actorID *uint, req dto.CarCreateRequest) (dto.CarResponse, error)
	Get(ctx context.Context, id uint) (dto.CarResponse, error)
	List(ctx context.Context, params map[string]string) ([]dto.CarResponse, dto.PaginationMeta, error)
	UpdateStatus(ctx context.Context, actorID *uint, id uint, req dto.CarStatusUpdateRequest) (dto.CarResponse, error)
}

type carService struct {
	repo      repository.CarRepository
	activity  ActivityWriter
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCarService constructs the car service.
func NewCarService(repo repository.CarRepository, activity ActivityWriter, validate *validator.Validate, logger zerolog.Logger) CarService {
	return &carService{
		repo:      repo,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "car_service").Logger(),
	}
}

func (s *carService) Create(ctx context.Context, actorID *uint, req dto.CarCreateRequest) (dto.CarResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CarResponse{}, err
	}

	car := models.Car{
		RegistrationNumber: strings.ToUpper(strings.TrimSpace(req.RegistrationNumber)),
		BrandID:            req.BrandID,
		ModelID:            req.ModelID,
		Year:               req.Year,
		Price:              req.Price,
		Status:             models.CarStatusInStock,
		LeadID:             req.LeadID,
	}

	if err := s.repo.Create(ctx, &car); err != nil {
		return dto.CarResponse{}, fmt.Errorf("create car: %w", err)
	}

	s.recordActivity(ctx, ActivityEntry{
		ActorID:   actorID,
		EventType: "car_created",
		Summary:   fmt.Sprintf("Car %s was added to inventory", car.RegistrationNumber),
		SubjectID: car.ID,
		LeadID:    car.LeadID,
		Metadata: map[string]interface{}{
			"registrationNumber": car.RegistrationNumber,
			"year":               car.Year,
		},
	})

	return dto.NewCarResponse(car), nil
}

func (s *carService) Get(ctx context.Context, id uint) (dto.CarResponse, error) {
	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.CarResponse{}, err
	}
	return dto.NewCarResponse(car), nil
}

func (s *carService) List(ctx context.Context, params map[string]string) ([]dto.CarResponse, dto.PaginationMeta, error) {
	opts := carQuery.Build(params)

	cars, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, dto.PaginationMeta{}, fmt.Errorf("list cars: %w", err)
	}

	responses := make([]dto.CarResponse, 0, len(cars))
	for _, car := range cars {
		responses = append(responses, dto.NewCarResponse(car))
	}

	return responses, dto.NewPaginationMeta(opts.Page, opts.Limit, total), nil
}

func (s *carService) UpdateStatus(ctx context.Context, actorID *uint, id uint, req dto.CarStatusUpdateRequest) (dto.CarResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CarResponse{}, err
	}

	previous, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.CarResponse{}, err
	}

	car, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return dto.CarResponse{}, err
	}

	s.recordActivity(ctx, ActivityEntry{
		ActorID:   actorID,
		EventType: "car_status_updated",
		Summary:   fmt.Sprintf("Car %s status changed from %s to %s", car.RegistrationNumber, previous.Status, car.Status),
		SubjectID: car.ID,
		LeadID:    car.LeadID,
		Metadata: map[string]interface{}{
			"oldStatus": previous.Status,
			"newStatus": car.Status,
		},
	})

	return dto.NewCarResponse(car), nil
}

func (s *carService) recordActivity(ctx context.Context, entry ActivityEntry) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("event_type", entry.EventType).Msg("audit write failed")
	}
}
