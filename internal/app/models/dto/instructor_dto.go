package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vdab/fietsen/internal/app/models"
)

// CreateInstructorRequest represents instructor creation data
type CreateInstructorRequest struct {
	FirstName string           `json:"firstName" binding:"required,trimmed,max=50"`
	LastName  string           `json:"lastName" binding:"required,trimmed,max=50"`
	Salary    *decimal.Decimal `json:"salary" binding:"required,nonnegative"`
	Email     string           `json:"email" binding:"required,email,max=100"`
	Gender    models.Gender    `json:"gender" binding:"required"`
	CampusID  int64            `json:"campusId" binding:"required,gt=0"`
	Nicknames []string         `json:"nicknames" binding:"omitempty,dive,required,trimmed,max=50"`
}

// RaiseSalaryRequest carries a raise percentage, e.g. "10" or "2.5"
type RaiseSalaryRequest struct {
	Percentage *decimal.Decimal `json:"percentage" binding:"required"`
}

// SalaryRangeQuery are the inclusive bounds of GET /instructors/salary-range
type SalaryRangeQuery struct {
	From string `form:"from" binding:"required,decimal"`
	To   string `form:"to" binding:"required,decimal"`
}

// CampusSummary is the campus as shown inside an instructor
type CampusSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// InstructorResponse represents an instructor with its nicknames and responsibilities
type InstructorResponse struct {
	ID               int64                    `json:"id"`
	FirstName        string                   `json:"firstName"`
	LastName         string                   `json:"lastName"`
	Salary           string                   `json:"salary" example:"1100.00"`
	Email            string                   `json:"email"`
	Gender           models.Gender            `json:"gender"`
	Campus           CampusSummary            `json:"campus"`
	Nicknames        []string                 `json:"nicknames"`
	Responsibilities []ResponsibilityResponse `json:"responsibilities"`
}

// InstructorSummary is an instructor as listed on a campus roster
type InstructorSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// IDAndEmailResponse is the (id, email) projection
type IDAndEmailResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// CountPerSalaryResponse is one row of the count per salary aggregate
type CountPerSalaryResponse struct {
	Salary string `json:"salary"`
	Count  int64  `json:"count"`
}

// MaxSalaryResponse carries the highest salary
type MaxSalaryResponse struct {
	Salary string `json:"salary"`
}

// FormatSalary renders a salary with its stored scale
func FormatSalary(salary decimal.Decimal) string {
	return salary.StringFixed(models.SalaryScale)
}

// NewInstructorResponse maps an instructor
func NewInstructorResponse(instructor *models.Instructor) InstructorResponse {
	responsibilities := make([]ResponsibilityResponse, 0)
	for _, r := range instructor.Responsibilities() {
		responsibilities = append(responsibilities, NewResponsibilityResponse(r))
	}
	return InstructorResponse{
		ID:               instructor.ID,
		FirstName:        instructor.FirstName(),
		LastName:         instructor.LastName(),
		Salary:           FormatSalary(instructor.Salary()),
		Email:            instructor.Email(),
		Gender:           instructor.Gender(),
		Campus:           CampusSummary{ID: instructor.Campus().ID, Name: instructor.Campus().Name},
		Nicknames:        instructor.Nicknames(),
		Responsibilities: responsibilities,
	}
}

// NewInstructorResponses maps a list of instructors
func NewInstructorResponses(instructors []*models.Instructor) []InstructorResponse {
	out := make([]InstructorResponse, 0, len(instructors))
	for _, instructor := range instructors {
		out = append(out, NewInstructorResponse(instructor))
	}
	return out
}
