package dto

import (
	"time"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
)

// DocumentCreateRequest registers an uploaded document. The binary lives in
// external storage; only its pointer arrives here.
type DocumentCreateRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=128"`
	FileName   string `json:"file_name" validate:"required,min=1,max=255"`
	FileSize   int64  `json:"file_size" validate:"omitempty,gte=0"`
	StorageURL string `json:"storage_url" validate:"omitempty,url,max=512"`
	LeadID     *uint  `json:"lead_id"`
}

// DocumentStatusUpdateRequest transitions a document's review status.
type DocumentStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending verified rejected"`
}

// DocumentResponse serializes a document.
type DocumentResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	StorageURL string    `json:"storage_url"`
	Status     string    `json:"status"`
	LeadID     *uint     `json:"lead_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewDocumentResponse converts a document model into a DTO.
func NewDocumentResponse(doc models.Document) DocumentResponse {
	return DocumentResponse{
		ID:         doc.ID,
		Title:      doc.Title,
		FileName:   doc.FileName,
		FileSize:   doc.FileSize,
		StorageURL: doc.StorageURL,
		Status:     doc.Status,
		LeadID:     doc.LeadID,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}
