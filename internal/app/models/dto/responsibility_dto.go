package dto

import "github.com/vdab/fietsen/internal/app/models"

// CreateResponsibilityRequest represents responsibility creation data
type CreateResponsibilityRequest struct {
	Name string `json:"name" binding:"required,trimmed,max=50"`
}

// ResponsibilityResponse represents a responsibility
type ResponsibilityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewResponsibilityResponse maps a responsibility
func NewResponsibilityResponse(r *models.Responsibility) ResponsibilityResponse {
	return ResponsibilityResponse{ID: r.ID, Name: r.Name()}
}
