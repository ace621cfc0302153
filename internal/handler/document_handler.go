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

// DocumentHandler exposes document tracking endpoints.
type DocumentHandler struct {
	service service.DocumentService
	logger  zerolog.Logger
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service service.DocumentService, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger.With().Str("component", "document_handler").Logger(),
	}
}

// Register attaches document routes to the router group.
func (h *DocumentHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id/status", h.updateStatus)
}

func (h *DocumentHandler) create(c *fiber.Ctx) error {
	var payload dto.DocumentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	doc, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create document")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create document")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "document created", doc)
}

func (h *DocumentHandler) list(c *fiber.Ctx) error {
	docs, pagination, err := h.service.List(c.Context(), queryParams(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list documents")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list documents")
	}

	return utils.SendPaginated(c, "documents retrieved", docs, pagination)
}

func (h *DocumentHandler) get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid document id")
	}

	doc, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "document not found")
		}
		h.logger.Error().Err(err).Uint("document_id", id).Msg("failed to fetch document")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch document")
	}

	return utils.SendSuccess(c, "document retrieved", doc)
}

func (h *DocumentHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid document id")
	}

	var payload dto.DocumentStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	doc, err := h.service.UpdateStatus(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "document not found")
		}
		h.logger.Error().Err(err).Uint("document_id", id).Msg("failed to update document status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update document status")
	}

	return utils.SendSuccess(c, "document status updated", doc)
}
