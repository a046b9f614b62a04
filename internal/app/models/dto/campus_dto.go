package dto

import "github.com/vdab/fietsen/internal/app/models"

// AddressDTO is the JSON shape of an address
type AddressDTO struct {
	Street       string `json:"street" binding:"required,max=50"`
	HouseNumber  string `json:"houseNumber" binding:"required,max=50"`
	PostalCode   string `json:"postalCode" binding:"required,max=50"`
	Municipality string `json:"municipality" binding:"required,max=50"`
}

// ToModel converts the DTO to the value object
func (a AddressDTO) ToModel() models.Address {
	return models.NewAddress(a.Street, a.HouseNumber, a.PostalCode, a.Municipality)
}

// CreateCampusRequest represents campus creation data
type CreateCampusRequest struct {
	Name    string     `json:"name" binding:"required,trimmed,max=50"`
	Address AddressDTO `json:"address" binding:"required"`
}

// CampusResponse represents a campus with its roster
type CampusResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Address     AddressDTO          `json:"address"`
	Instructors []InstructorSummary `json:"instructors"`
}

// NewCampusResponse maps a campus
func NewCampusResponse(campus *models.Campus) CampusResponse {
	roster := make([]InstructorSummary, 0)
	for _, i := range campus.Instructors() {
		roster = append(roster, InstructorSummary{
			ID:        i.ID,
			FirstName: i.FirstName(),
			LastName:  i.LastName(),
			Email:     i.Email(),
		})
	}
	return CampusResponse{
		ID:   campus.ID,
		Name: campus.Name,
		Address: AddressDTO{
			Street:       campus.Address.Street,
			HouseNumber:  campus.Address.HouseNumber,
			PostalCode:   campus.Address.PostalCode,
			Municipality: campus.Address.Municipality,
		},
		Instructors: roster,
	}
}
