package dto

import (
	"time"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
)

// OpportunityCreateRequest opens a sell opportunity for a lead.
type OpportunityCreateRequest struct {
	LeadID      uint    `json:"lead_id" validate:"required"`
	CarID       *uint   `json:"car_id"`
	QuotedPrice float64 `json:"quoted_price" validate:"omitempty,gte=0"`
}

// OpportunityStatusUpdateRequest transitions an opportunity's status.
type OpportunityStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=open quoted confirmed closed cancelled"`
}

// OpportunityResponse serializes a sell opportunity.
type OpportunityResponse struct {
	ID          uint      `json:"id"`
	LeadID      uint      `json:"lead_id"`
	CarID       *uint     `json:"car_id"`
	QuotedPrice float64   `json:"quoted_price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewOpportunityResponse converts a sell opportunity model into a DTO.
func NewOpportunityResponse(op models.SellOpportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:          op.ID,
		LeadID:      op.LeadID,
		CarID:       op.CarID,
		QuotedPrice: op.QuotedPrice,
		Status:      op.Status,
		CreatedAt:   op.CreatedAt,
		UpdatedAt:   op.UpdatedAt,
	}
}
