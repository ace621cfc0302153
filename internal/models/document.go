package models

import "time"

// Document review statuses.
const (
	DocumentStatusPending  = "pending"
	DocumentStatusVerified = "verified"
	DocumentStatusRejected = "rejected"
)

// Document tracks an uploaded customer document. Binary storage lives in an
// external service; only the pointer and descriptive fields are kept here.
type Document struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:128;not null" json:"title"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FileSize   int64     `json:"file_size"`
	StorageURL string    `gorm:"size:512" json:"storage_url"`
	Status     string    `gorm:"size:32;not null;default:pending" json:"status"`
	LeadID     *uint     `gorm:"index" json:"lead_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
