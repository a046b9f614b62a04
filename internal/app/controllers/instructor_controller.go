package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/vdab/fietsen/internal/app/models"
	"github.com/vdab/fietsen/internal/app/models/dto"
	"github.com/vdab/fietsen/internal/app/services"
	"github.com/vdab/fietsen/internal/middleware"
)

// InstructorController handles instructor-related HTTP requests
type InstructorController struct {
	instructorService services.InstructorService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructorService services.InstructorService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
	}
}

// CreateInstructor handles instructor creation
// @Summary Create a new instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Param request body dto.CreateInstructorRequest true "Instructor information"
// @Success 201 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 404 {object} dto.APIResponse "Campus not found"
// @Failure 409 {object} dto.APIResponse "Email already in use"
// @Router /instructors [post]
func (c *InstructorController) CreateInstructor(ctx *gin.Context) {
	var req dto.CreateInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	instructor, err := c.instructorService.Create(ctx, services.CreateInstructorInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Salary:    *req.Salary,
		Email:     req.Email,
		Gender:    req.Gender,
		CampusID:  req.CampusID,
		Nicknames: req.Nicknames,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.NewInstructorResponse(instructor)))
}

// GetInstructor retrieves an instructor with its campus, nicknames and responsibilities
// @Summary Get instructor details
// @Tags instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Failure 404 {object} dto.APIResponse "Instructor not found"
// @Router /instructors/{id} [get]
func (c *InstructorController) GetInstructor(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	instructor, err := c.instructorService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewInstructorResponse(instructor)))
}

// ListInstructors lists all instructors by ascending salary
// @Summary List instructors
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorResponse}
// @Router /instructors [get]
func (c *InstructorController) ListInstructors(ctx *gin.Context) {
	instructors, err := c.instructorService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewInstructorResponses(instructors)))
}

// DeleteInstructor deletes an instructor; unknown ids are accepted
// @Summary Delete an instructor
// @Tags instructors
// @Param id path int true "Instructor ID"
// @Success 204
// @Router /instructors/{id} [delete]
func (c *InstructorController) DeleteInstructor(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.instructorService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RaiseSalary raises the salary of one instructor
// @Summary Raise one salary
// @Tags instructors
// @Accept json
// @Produce json
// @Param id path int true "Instructor ID"
// @Param request body dto.RaiseSalaryRequest true "Raise percentage"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Failure 404 {object} dto.APIResponse "Instructor not found"
// @Failure 422 {object} dto.APIResponse "Salary overflow"
// @Router /instructors/{id}/raise [post]
func (c *InstructorController) RaiseSalary(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RaiseSalaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	instructor, err := c.instructorService.RaiseSalary(ctx, id, *req.Percentage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewInstructorResponse(instructor)))
}

// BulkRaise raises every salary in one statement
// @Summary Raise all salaries
// @Tags instructors
// @Accept json
// @Produce json
// @Param request body dto.RaiseSalaryRequest true "Raise percentage"
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /instructors/raise [post]
func (c *InstructorController) BulkRaise(ctx *gin.Context) {
	var req dto.RaiseSalaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	updated, err := c.instructorService.BulkRaise(ctx, *req.Percentage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.CountResponse{Updated: updated}))
}

// ListBySalaryRange lists the instructors with a salary in [from, to]
// @Summary Instructors by salary range
// @Tags instructors
// @Produce json
// @Param from query number true "Lowest salary"
// @Param to query number true "Highest salary"
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorResponse}
// @Router /instructors/salary-range [get]
func (c *InstructorController) ListBySalaryRange(ctx *gin.Context) {
	var query dto.SalaryRangeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	lo, errLo := decimal.NewFromString(query.From)
	hi, errHi := decimal.NewFromString(query.To)
	if errLo != nil || errHi != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Salary bounds must be decimal numbers")))
		return
	}

	instructors, err := c.instructorService.ListBySalaryRange(ctx, lo, hi)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewInstructorResponses(instructors)))
}

// EmailAddresses lists the e-mail address of every instructor
// @Summary Instructor e-mail addresses
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /instructors/emails [get]
func (c *InstructorController) EmailAddresses(ctx *gin.Context) {
	emails, err := c.instructorService.EmailAddresses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(emails))
}

// IDAndEmails lists (id, email) pairs
// @Summary Instructor ids and e-mail addresses
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.IDAndEmailResponse}
// @Router /instructors/id-emails [get]
func (c *InstructorController) IDAndEmails(ctx *gin.Context) {
	pairs, err := c.instructorService.IDAndEmails(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.IDAndEmailResponse, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, dto.IDAndEmailResponse{ID: p.ID, Email: p.Email})
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(out))
}

// MaxSalary returns the highest salary
// @Summary Highest salary
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.MaxSalaryResponse}
// @Failure 404 {object} dto.APIResponse "No instructors"
// @Router /instructors/stats/max-salary [get]
func (c *InstructorController) MaxSalary(ctx *gin.Context) {
	highest, err := c.instructorService.MaxSalary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.MaxSalaryResponse{Salary: dto.FormatSalary(highest)}))
}

// CountPerSalary groups the instructors by salary
// @Summary Instructor count per salary
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CountPerSalaryResponse}
// @Router /instructors/stats/per-salary [get]
func (c *InstructorController) CountPerSalary(ctx *gin.Context) {
	counts, err := c.instructorService.CountPerSalary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.CountPerSalaryResponse, 0, len(counts))
	for _, row := range counts {
		out = append(out, dto.CountPerSalaryResponse{Salary: dto.FormatSalary(row.Salary), Count: row.Count})
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(out))
}

// AddNickname adds a nickname; adding an existing one changes nothing
// @Summary Add a nickname
// @Tags instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Param nickname path string true "Nickname"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Router /instructors/{id}/nicknames/{nickname} [post]
func (c *InstructorController) AddNickname(ctx *gin.Context) {
	c.modifyNickname(ctx, c.instructorService.AddNickname)
}

// RemoveNickname removes a nickname; removing an absent one changes nothing
// @Summary Remove a nickname
// @Tags instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Param nickname path string true "Nickname"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Router /instructors/{id}/nicknames/{nickname} [delete]
func (c *InstructorController) RemoveNickname(ctx *gin.Context) {
	c.modifyNickname(ctx, c.instructorService.RemoveNickname)
}

func (c *InstructorController) modifyNickname(ctx *gin.Context, modify func(ctx context.Context, id int64, nickname string) (*models.Instructor, error)) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	instructor, err := modify(ctx, id, ctx.Param("nickname"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewInstructorResponse(instructor)))
}

// AssignResponsibility links an instructor and a responsibility
// @Summary Assign a responsibility
// @Tags instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Param rid path int true "Responsibility ID"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Router /instructors/{id}/responsibilities/{rid} [put]
func (c *InstructorController) AssignResponsibility(ctx *gin.Context) {
	c.modifyResponsibility(ctx, c.instructorService.AssignResponsibility)
}

// UnassignResponsibility unlinks an instructor and a responsibility
// @Summary Unassign a responsibility
// @Tags instructors
// @Produce json
// @Param id path int true "Instructor ID"
// @Param rid path int true "Responsibility ID"
// @Success 200 {object} dto.APIResponse{data=dto.InstructorResponse}
// @Router /instructors/{id}/responsibilities/{rid} [delete]
func (c *InstructorController) UnassignResponsibility(ctx *gin.Context) {
	c.modifyResponsibility(ctx, c.instructorService.UnassignResponsibility)
}

func (c *InstructorController) modifyResponsibility(ctx *gin.Context, modify func(ctx context.Context, id, responsibilityID int64) (*models.Instructor, error)) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	responsibilityID, ok := parseID(ctx, "rid")
	if !ok {
		return
	}

	instructor, err := modify(ctx, id, responsibilityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewInstructorResponse(instructor)))
}
