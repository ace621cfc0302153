package models

import "time"

// Sell opportunity statuses.
const (
	OpportunityStatusOpen      = "open"
	OpportunityStatusQuoted    = "quoted"
	OpportunityStatusConfirmed = "confirmed"
	OpportunityStatusClosed    = "closed"
	OpportunityStatusCancelled = "cancelled"
)

// SellOpportunity links a lead to a car with a quoted price.
type SellOpportunity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LeadID      uint      `gorm:"index;not null" json:"lead_id"`
	Lead        *Lead     `gorm:"foreignKey:LeadID" json:"-"`
	CarID       *uint     `gorm:"index" json:"car_id"`
	QuotedPrice float64   `json:"quoted_price"`
	Status      string    `gorm:"size:32;not null;default:open" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
