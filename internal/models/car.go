package models

import "time"

// Car inventory statuses.
const (
	CarStatusInStock   = "in_stock"
	CarStatusReserved  = "reserved"
	CarStatusSold      = "sold"
	CarStatusDelivered = "delivered"
)

// Car is an inventory vehicle. Brand and model are stored as reference ids so
// list filters match a single related entity rather than free text.
type Car struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	RegistrationNumber string    `gorm:"size:32;uniqueIndex;not null" json:"registration_number"`
	BrandID            uint      `gorm:"index;not null" json:"brand_id"`
	ModelID            uint      `gorm:"index;not null" json:"model_id"`
	Year               int       `json:"year"`
	Price              float64   `json:"price"`
	Status             string    `gorm:"size:32;not null;default:in_stock" json:"status"`
	LeadID             *uint     `gorm:"index" json:"lead_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
