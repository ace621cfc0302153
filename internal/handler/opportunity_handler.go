package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Dinesh1441/carstreet-sub002/internal/dto"
	"github.com/Dinesh1441/carstreet-sub002/internal/service"
	"github.com/Dinesh1441/carstreet-sub002/internal/utils"
)

// OpportunityHandler exposes sell opportunity endpoints.
type OpportunityHandler struct {
	service service.OpportunityService
	logger  zerolog.Logger
}

// NewOpportunityHandler constructs the handler.
func NewOpportunityHandler(service service.OpportunityService, logger zerolog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		service: service,
		logger:  logger.With().Str("component", "opportunity_handler").Logger(),
	}
}

// Register attaches opportunity routes to the router group.
func (h *OpportunityHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id/status", h.updateStatus)
}

func (h *OpportunityHandler) create(c *fiber.Ctx) error {
	var payload dto.OpportunityCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	op, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lead not found")
		}
		h.logger.Error().Err(err).Msg("failed to create opportunity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create opportunity")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "opportunity created", op)
}

func (h *OpportunityHandler) list(c *fiber.Ctx) error {
	ops, pagination, err := h.service.List(c.Context(), queryParams(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list opportunities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list opportunities")
	}

	return utils.SendPaginated(c, "opportunities retrieved", ops, pagination)
}

func (h *OpportunityHandler) get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid opportunity id")
	}

	op, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "opportunity not found")
		}
		h.logger.Error().Err(err).Uint("opportunity_id", id).Msg("failed to fetch opportunity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch opportunity")
	}

	return utils.SendSuccess(c, "opportunity retrieved", op)
}

func (h *OpportunityHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid opportunity id")
	}

	var payload dto.OpportunityStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	op, err := h.service.UpdateStatus(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "opportunity not found")
		}
		h.logger.Error().Err(err).Uint("opportunity_id", id).Msg("failed to update opportunity status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update opportunity status")
	}

	return utils.SendSuccess(c, "opportunity status updated", op)
}
