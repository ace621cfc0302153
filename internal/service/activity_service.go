package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/Dinesh1441/carstreet-sub002/internal/dto"
	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/observability"
	"github.com/Dinesh1441/carstreet-sub002/internal/repository"
)

// Metadata must stay a flat mapping of string keys to JSON scalars. Nothing
// else about its shape is enforced.
const metadataSchemaJSON = `{
	"type": "object",
	"additionalProperties": {
		"type": ["string", "number", "integer", "boolean", "null"]
	}
}`

// ActivityEntry captures the details required to persist one audit entry.
// ActorID may be nil to represent a system-initiated event.
type ActivityEntry struct {
	ActorID   *uint
	EventType string
	Summary   string
	SubjectID uint
	LeadID    *uint
	Metadata  map[string]interface{}
}

// ActivityWriter records audit events. It is a library call made by the CRM
// services after their primary mutation succeeds; it is never exposed as an
// HTTP write endpoint. A failed write must not unwind the mutation it
// documents, so callers log the returned error and move on.
type ActivityWriter interface {
	Record(ctx context.Context, entry ActivityEntry) (dto.ActivityEventResponse, error)
}

type activityService struct {
	repo           repository.ActivityRepository
	cache          *redis.Client
	summaryPolicy  *bluemonday.Policy
	metadataSchema *jsonschema.Schema
	logger         zerolog.Logger
	tracer         trace.Tracer
}

// NewActivityWriter constructs the activity writer. The cache client is
// optional; when present a per-lead version key is bumped after each write so
// cached timeline pages are superseded.
func NewActivityWriter(repo repository.ActivityRepository, cache *redis.Client, logger zerolog.Logger) ActivityWriter {
	return &activityService{
		repo:           repo,
		cache:          cache,
		summaryPolicy:  bluemonday.StrictPolicy(),
		metadataSchema: jsonschema.MustCompileString("activity_metadata.json", metadataSchemaJSON),
		logger:         logger.With().Str("component", "activity_writer").Logger(),
		tracer:         otel.Tracer("github.com/Dinesh1441/carstreet-sub002/internal/service/activity"),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) (dto.ActivityEventResponse, error) {
	ctx, span := s.tracer.Start(ctx, "activity.record")
	defer span.End()

	eventType := strings.TrimSpace(entry.EventType)
	if eventType == "" {
		observability.ActivityEvents().WithLabelValues("unknown", "invalid").Inc()
		return dto.ActivityEventResponse{}, fmt.Errorf("event type is required")
	}

	summary := strings.TrimSpace(s.summaryPolicy.Sanitize(entry.Summary))
	if summary == "" {
		observability.ActivityEvents().WithLabelValues(eventType, "invalid").Inc()
		return dto.ActivityEventResponse{}, fmt.Errorf("summary is required")
	}

	if entry.SubjectID == 0 {
		observability.ActivityEvents().WithLabelValues(eventType, "invalid").Inc()
		return dto.ActivityEventResponse{}, fmt.Errorf("subject id is required")
	}

	if err := s.validateMetadata(entry.Metadata); err != nil {
		observability.ActivityEvents().WithLabelValues(eventType, "invalid").Inc()
		return dto.ActivityEventResponse{}, err
	}

	event := models.ActivityEvent{
		ActorID:   entry.ActorID,
		EventType: eventType,
		Summary:   summary,
		SubjectID: entry.SubjectID,
		LeadID:    entry.LeadID,
		Metadata:  toJSONMap(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &event); err != nil {
		observability.ActivityEvents().WithLabelValues(eventType, "error").Inc()
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to persist activity event")
		return dto.ActivityEventResponse{}, fmt.Errorf("persist activity event: %w", err)
	}

	observability.ActivityEvents().WithLabelValues(eventType, "success").Inc()
	s.bumpTimelineVersion(ctx, entry.LeadID)

	return dto.NewActivityEventResponse(event), nil
}

func (s *activityService) validateMetadata(metadata map[string]interface{}) error {
	if len(metadata) == 0 {
		return nil
	}

	// Round-trip through JSON so the schema sees the exact value that will be
	// persisted, whatever Go types the call site used.
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("metadata must be JSON-serializable: %w", err)
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("metadata must be JSON-serializable: %w", err)
	}
	if err := s.metadataSchema.Validate(decoded); err != nil {
		return fmt.Errorf("metadata must map string keys to scalar values: %w", err)
	}
	return nil
}

// bumpTimelineVersion invalidates cached timeline pages for the lead. Best
// effort: a failed bump only means a page may be served stale until its TTL.
func (s *activityService) bumpTimelineVersion(ctx context.Context, leadID *uint) {
	if s.cache == nil || leadID == nil {
		return
	}
	if err := s.cache.Incr(ctx, TimelineVersionKey(*leadID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("lead_id", *leadID).Msg("failed to bump timeline cache version")
	}
}

func toJSONMap(metadata map[string]interface{}) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for key, value := range metadata {
		out[key] = value
	}
	return out
}
