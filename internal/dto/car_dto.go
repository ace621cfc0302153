package dto

import (
	"time"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
)

// CarCreateRequest captures the payload for adding a vehicle to inventory.
type CarCreateRequest struct {
	RegistrationNumber string  `json:"registration_number" validate:"required,min=1,max=32"`
	BrandID            uint    `json:"brand_id" validate:"required"`
	ModelID            uint    `json:"model_id" validate:"required"`
	Year               int     `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	Price              float64 `json:"price" validate:"omitempty,gte=0"`
	LeadID             *uint   `json:"lead_id"`
}

// CarStatusUpdateRequest transitions a vehicle's inventory status.
type CarStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=in_stock reserved sold delivered"`
}

// CarResponse serializes a car.
type CarResponse struct {
	ID                 uint      `json:"id"`
	RegistrationNumber string    `json:"registration_number"`
	BrandID            uint      `json:"brand_id"`
	ModelID            uint      `json:"model_id"`
	Year               int       `json:"year"`
	Price              float64   `json:"price"`
	Status             string    `json:"status"`
	LeadID             *uint     `json:"lead_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewCarResponse converts a car model into a DTO.
func NewCarResponse(car models.Car) CarResponse {
	return CarResponse{
		ID:                 car.ID,
		RegistrationNumber: car.RegistrationNumber,
		BrandID:            car.BrandID,
		ModelID:            car.ModelID,
		Year:               car.Year,
		Price:              car.Price,
		Status:             car.Status,
		LeadID:             car.LeadID,
		CreatedAt:          car.CreatedAt,
		UpdatedAt:          car.UpdatedAt,
	}
}
