package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Dinesh1441/carstreet-sub002/internal/service"
	"github.com/Dinesh1441/carstreet-sub002/internal/utils"
)

// TimelineHandler serves the lead activity timeline.
type TimelineHandler struct {
	service      service.TimelineService
	exposeErrors bool
	logger       zerolog.Logger
}

// NewTimelineHandler constructs the handler. exposeErrors passes underlying
// error text through to clients; keep it off in production.
func NewTimelineHandler(service service.TimelineService, exposeErrors bool, logger zerolog.Logger) *TimelineHandler {
	return &TimelineHandler{
		service:      service,
		exposeErrors: exposeErrors,
		logger:       logger.With().Str("component", "timeline_handler").Logger(),
	}
}

// Register wires the timeline route onto a lead-scoped group.
func (h *TimelineHandler) Register(router fiber.Router) {
	router.Get("/:leadId/timeline", h.timeline)
}

func (h *TimelineHandler) timeline(c *fiber.Ctx) error {
	// An unparsable lead reference is treated like a lead with no activity:
	// the service returns an empty page for id 0.
	leadID, err := parsePathID(c, "leadId")
	if err != nil {
		leadID = 0
	}

	result, err := h.service.GetTimeline(c.Context(), leadID, queryParams(c))
	if err != nil {
		h.logger.Error().Err(err).Uint("lead_id", leadID).Msg("failed to fetch timeline")
		message := "failed to fetch timeline"
		if h.exposeErrors {
			message = err.Error()
		}
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}

	return utils.SendPaginated(c, "timeline retrieved", result.Items, result.Pagination)
}
