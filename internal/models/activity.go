package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityEvent is one immutable audit entry. Rows are only ever inserted;
// corrections are recorded as new events, never as edits.
//
// EventType is an opaque grouping key for the read side. Known values and the
// metadata fields their writers conventionally attach (documented, not
// enforced):
//
//	lead_created                     {source, stage}
//	lead_stage_updated               {oldStage, newStage}
//	note_added                       {note}
//	car_created                      {registrationNumber, year}
//	car_status_updated               {oldStatus, newStatus}
//	document_uploaded                {title, fileName, fileSize}
//	document_status_updated          {oldStatus, newStatus}
//	sell_opportunity_created         {quotedPrice}
//	sell_opportunity_status_updated  {oldStatus, newStatus}
type ActivityEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	ActorID   *uint             `gorm:"index" json:"actor_id"`
	Actor     *User             `gorm:"foreignKey:ActorID" json:"-"`
	EventType string            `gorm:"size:64;not null;index" json:"event_type"`
	Summary   string            `gorm:"size:512;not null" json:"summary"`
	SubjectID uint              `gorm:"not null" json:"subject_id"`
	LeadID    *uint             `gorm:"index" json:"lead_id"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
