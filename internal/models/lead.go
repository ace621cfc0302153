package models

import "time"

// Lead pipeline stages.
const (
	LeadStageNew         = "new"
	LeadStageContacted   = "contacted"
	LeadStageQualified   = "qualified"
	LeadStageNegotiation = "negotiation"
	LeadStageWon         = "won"
	LeadStageLost        = "lost"
)

// Lead is a prospective customer. The owner is the salesperson the lead is
// assigned to and doubles as the actor fallback for unauthenticated mutations.
type Lead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	Source    string    `gorm:"size:64" json:"source"`
	Stage     string    `gorm:"size:32;not null;default:new" json:"stage"`
	OwnerID   *uint     `gorm:"index" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
