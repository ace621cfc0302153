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

// CarHandler exposes inventory endpoints.
type CarHandler struct {
	service service.CarService
	logger  zerolog.Logger
}

// NewCarHandler constructs the handler.
func NewCarHandler(service service.CarService, logger zerolog.Logger) *CarHandler {
	return &CarHandler{
		service: service,
		logger:  logger.With().Str("component", "car_handler").Logger(),
	}
}

// Register attaches car routes to the router group.
func (h *CarHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id/status", h.updateStatus)
}

func (h *CarHandler) create(c *fiber.Ctx) error {
	var payload dto.CarCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	car, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create car")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create car")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "car created", car)
}

func (h *CarHandler) list(c *fiber.Ctx) error {
	cars, pagination, err := h.service.List(c.Context(), queryParams(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list cars")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list cars")
	}

	return utils.SendPaginated(c, "cars retrieved", cars, pagination)
}

func (h *CarHandler) get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid car id")
	}

	car, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "car not found")
		}
		h.logger.Error().Err(err).Uint("car_id", id).Msg("failed to fetch car")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch car")
	}

	return utils.SendSuccess(c, "car retrieved", car)
}

func (h *CarHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid car id")
	}

	var payload dto.CarStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	car, err := h.service.UpdateStatus(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "car not found")
		}
		h.logger.Error().Err(err).Uint("car_id", id).Msg("failed to update car status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update car status")
	}

	return utils.SendSuccess(c, "car status updated", car)
}
