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

// LeadHandler exposes lead CRUD and stage transition endpoints.
type LeadHandler struct {
	service service.LeadService
	logger  zerolog.Logger
}

// NewLeadHandler constructs the handler.
func NewLeadHandler(service service.LeadService, logger zerolog.Logger) *LeadHandler {
	return &LeadHandler{
		service: service,
		logger:  logger.With().Str("component", "lead_handler").Logger(),
	}
}

// Register attaches lead routes to the router group.
func (h *LeadHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id/stage", h.updateStage)
	router.Post("/:id/notes", h.addNote)
}

func (h *LeadHandler) create(c *fiber.Ctx) error {
	var payload dto.LeadCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	lead, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create lead")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create lead")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lead created", lead)
}

func (h *LeadHandler) list(c *fiber.Ctx) error {
	leads, pagination, err := h.service.List(c.Context(), queryParams(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list leads")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list leads")
	}

	return utils.SendPaginated(c, "leads retrieved", leads, pagination)
}

func (h *LeadHandler) get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lead id")
	}

	lead, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lead not found")
		}
		h.logger.Error().Err(err).Uint("lead_id", id).Msg("failed to fetch lead")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch lead")
	}

	return utils.SendSuccess(c, "lead retrieved", lead)
}

func (h *LeadHandler) updateStage(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lead id")
	}

	var payload dto.LeadStageUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	lead, err := h.service.UpdateStage(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lead not found")
		}
		h.logger.Error().Err(err).Uint("lead_id", id).Msg("failed to update lead stage")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update lead stage")
	}

	return utils.SendSuccess(c, "lead stage updated", lead)
}

func (h *LeadHandler) addNote(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lead id")
	}

	var payload dto.LeadNoteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	lead, err := h.service.AddNote(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lead not found")
		}
		h.logger.Error().Err(err).Uint("lead_id", id).Msg("failed to add note")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to add note")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note added", lead)
}
