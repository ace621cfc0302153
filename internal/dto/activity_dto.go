package dto

import (
	"time"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
)

// ActorResponse is the minimal user projection attached to timeline entries.
type ActorResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ActivityEventResponse serializes one audit entry. Metadata is returned
// verbatim as written.
type ActivityEventResponse struct {
	ID        uint                   `json:"id"`
	Actor     *ActorResponse         `json:"actor"`
	EventType string                 `json:"event_type"`
	Summary   string                 `json:"summary"`
	SubjectID uint                   `json:"subject_id"`
	LeadID    *uint                  `json:"lead_id"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// TimelineResponse is one page of a lead's timeline.
type TimelineResponse struct {
	Items      []ActivityEventResponse `json:"items"`
	Pagination PaginationMeta          `json:"pagination"`
}

// NewActivityEventResponse converts an activity event model into a DTO.
func NewActivityEventResponse(event models.ActivityEvent) ActivityEventResponse {
	var actor *ActorResponse
	if event.Actor != nil {
		actor = &ActorResponse{ID: event.Actor.ID, Name: event.Actor.Name, Email: event.Actor.Email}
	}

	metadata := map[string]interface{}{}
	for key, value := range event.Metadata {
		metadata[key] = value
	}

	return ActivityEventResponse{
		ID:        event.ID,
		Actor:     actor,
		EventType: event.EventType,
		Summary:   event.Summary,
		SubjectID: event.SubjectID,
		LeadID:    event.LeadID,
		Metadata:  metadata,
		CreatedAt: event.CreatedAt,
	}
}
