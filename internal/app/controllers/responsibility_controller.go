package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vdab/fietsen/internal/app/models/dto"
	"github.com/vdab/fietsen/internal/app/services"
	"github.com/vdab/fietsen/internal/middleware"
)

// ResponsibilityController handles responsibility-related HTTP requests
type ResponsibilityController struct {
	responsibilityService services.ResponsibilityService
}

// NewResponsibilityController creates a new ResponsibilityController
func NewResponsibilityController(responsibilityService services.ResponsibilityService) *ResponsibilityController {
	return &ResponsibilityController{
		responsibilityService: responsibilityService,
	}
}

// CreateResponsibility handles responsibility creation
// @Summary Create a new responsibility
// @Tags responsibilities
// @Accept json
// @Produce json
// @Param request body dto.CreateResponsibilityRequest true "Responsibility name"
// @Success 201 {object} dto.APIResponse{data=dto.ResponsibilityResponse}
// @Failure 409 {object} dto.APIResponse "Name already exists, ignoring case"
// @Router /responsibilities [post]
func (c *ResponsibilityController) CreateResponsibility(ctx *gin.Context) {
	var req dto.CreateResponsibilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	responsibility, err := c.responsibilityService.Create(ctx, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.NewResponsibilityResponse(responsibility)))
}

// GetResponsibility retrieves a responsibility by id
// @Summary Get a responsibility
// @Tags responsibilities
// @Produce json
// @Param id path int true "Responsibility ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResponsibilityResponse}
// @Failure 404 {object} dto.APIResponse "Responsibility not found"
// @Router /responsibilities/{id} [get]
func (c *ResponsibilityController) GetResponsibility(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	responsibility, err := c.responsibilityService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewResponsibilityResponse(responsibility)))
}

// FindResponsibility looks a responsibility up by name, ignoring case
// @Summary Find a responsibility by name
// @Tags responsibilities
// @Produce json
// @Param name query string true "Responsibility name"
// @Success 200 {object} dto.APIResponse{data=dto.ResponsibilityResponse}
// @Failure 404 {object} dto.APIResponse "Responsibility not found"
// @Router /responsibilities [get]
func (c *ResponsibilityController) FindResponsibility(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "name is required").WithField("name")))
		return
	}

	responsibility, err := c.responsibilityService.GetByName(ctx, name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewResponsibilityResponse(responsibility)))
}
