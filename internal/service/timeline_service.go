package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Dinesh1441/carstreet-sub002/internal/dto"
	"github.com/Dinesh1441/carstreet-sub002/internal/observability"
	"github.com/Dinesh1441/carstreet-sub002/internal/query"
	"github.com/Dinesh1441/carstreet-sub002/internal/repository"
)

// timelineQuery is the shared builder definition for the lead timeline. The
// exposed "type" parameter matches event_type exactly; search covers the
// pre-rendered summary and the event type tag.
var timelineQuery = query.Definition{
	SearchColumns: []string{"summary", "event_type"},
	FilterColumns: map[string]string{
		"type": "event_type",
	},
	SortColumns: map[string]string{
		"createdAt": "created_at",
		"eventType": "event_type",
	},
	DefaultSortColumn: "created_at",
	DefaultDescending: true,
}

// TimelineService reads a lead's activity history back as flat, ordered,
// paginated pages. Day-grouping is a presentation concern left to the client.
type TimelineService interface {
	GetTimeline(ctx context.Context, leadID uint, params map[string]string) (dto.TimelineResponse, error)
}

type timelineService struct {
	repo   repository.ActivityRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
	tracer trace.Tracer
}

// NewTimelineService builds the timeline reader. The cache client is optional;
// when present pages are cached for ttl under a key that embeds the per-lead
// version bumped by the activity writer.
func NewTimelineService(repo repository.ActivityRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) TimelineService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &timelineService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "timeline_service").Logger(),
		tracer: otel.Tracer("github.com/Dinesh1441/carstreet-sub002/internal/service/timeline"),
	}
}

// TimelineVersionKey names the Redis counter that versions a lead's cached
// timeline pages.
func TimelineVersionKey(leadID uint) string {
	return fmt.Sprintf("timeline:ver:%d", leadID)
}

func (s *timelineService) GetTimeline(ctx context.Context, leadID uint, params map[string]string) (dto.TimelineResponse, error) {
	ctx, span := s.tracer.Start(ctx, "timeline.get")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.TimelineLatency().Observe(time.Since(start).Seconds())
	}()

	opts := timelineQuery.Build(params)

	// "No activity for this lead yet" is a normal state, as is an unresolvable
	// lead reference: both yield an empty page, never an error.
	if leadID == 0 {
		return emptyTimeline(opts), nil
	}

	cacheKey := s.cacheKey(ctx, leadID, params)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		observability.TimelineRequests().WithLabelValues("hit").Inc()
		return cached, nil
	}
	observability.TimelineRequests().WithLabelValues("miss").Inc()

	events, total, err := s.repo.ListByLead(ctx, leadID, opts)
	if err != nil {
		return dto.TimelineResponse{}, fmt.Errorf("list timeline for lead %d: %w", leadID, err)
	}

	items := make([]dto.ActivityEventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, dto.NewActivityEventResponse(event))
	}

	response := dto.TimelineResponse{
		Items:      items,
		Pagination: dto.NewPaginationMeta(opts.Page, opts.Limit, total),
	}

	s.toCache(ctx, cacheKey, response)

	return response, nil
}

func emptyTimeline(opts query.Options) dto.TimelineResponse {
	return dto.TimelineResponse{
		Items:      []dto.ActivityEventResponse{},
		Pagination: dto.NewPaginationMeta(opts.Page, opts.Limit, 0),
	}
}

// cacheKey embeds the current per-lead version so writes naturally supersede
// cached pages without explicit deletion.
func (s *timelineService) cacheKey(ctx context.Context, leadID uint, params map[string]string) string {
	if s.cache == nil {
		return ""
	}

	version := "0"
	if v, err := s.cache.Get(ctx, TimelineVersionKey(leadID)).Result(); err == nil {
		version = v
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(params[key])
		b.WriteByte('&')
	}
	digest := sha256.Sum256([]byte(b.String()))

	return fmt.Sprintf("timeline:%d:v%s:%s", leadID, version, hex.EncodeToString(digest[:8]))
}

func (s *timelineService) fromCache(ctx context.Context, key string) (dto.TimelineResponse, bool) {
	if s.cache == nil || key == "" {
		return dto.TimelineResponse{}, false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return dto.TimelineResponse{}, false
	}

	var response dto.TimelineResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable timeline cache entry")
		return dto.TimelineResponse{}, false
	}

	return response, true
}

func (s *timelineService) toCache(ctx context.Context, key string, response dto.TimelineResponse) {
	if s.cache == nil || key == "" {
		return
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache timeline page")
	}
}
