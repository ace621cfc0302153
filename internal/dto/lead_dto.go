package dto

import (
	"time"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
)

// LeadCreateRequest captures the payload for registering a new lead.
type LeadCreateRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=128"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Source  string `json:"source" validate:"omitempty,max=64"`
	OwnerID *uint  `json:"owner_id"`
}

// LeadStageUpdateRequest moves a lead along the pipeline.
type LeadStageUpdateRequest struct {
	Stage string `json:"stage" validate:"required,oneof=new contacted qualified negotiation won lost"`
}

// LeadNoteRequest attaches a free-text note to a lead.
type LeadNoteRequest struct {
	Note string `json:"note" validate:"required,min=1,max=2000"`
}

// LeadResponse serializes a lead.
type LeadResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	Stage     string    `json:"stage"`
	OwnerID   *uint     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLeadResponse converts a lead model into a DTO.
func NewLeadResponse(lead models.Lead) LeadResponse {
	return LeadResponse{
		ID:        lead.ID,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Email:     lead.Email,
		Source:    lead.Source,
		Stage:     lead.Stage,
		OwnerID:   lead.OwnerID,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}
