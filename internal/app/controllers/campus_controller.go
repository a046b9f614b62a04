package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vdab/fietsen/internal/app/models/dto"
	"github.com/vdab/fietsen/internal/app/services"
	"github.com/vdab/fietsen/internal/middleware"
)

// CampusController handles campus-related HTTP requests
type CampusController struct {
	campusService services.CampusService
}

// NewCampusController creates a new CampusController
func NewCampusController(campusService services.CampusService) *CampusController {
	return &CampusController{
		campusService: campusService,
	}
}

// CreateCampus handles campus creation
// @Summary Create a new campus
// @Tags campuses
// @Accept json
// @Produce json
// @Param request body dto.CreateCampusRequest true "Campus information"
// @Success 201 {object} dto.APIResponse{data=dto.CampusResponse}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Router /campuses [post]
func (c *CampusController) CreateCampus(ctx *gin.Context) {
	var req dto.CreateCampusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	campus, err := c.campusService.Create(ctx, req.Name, req.Address.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.NewCampusResponse(campus)))
}

// GetCampus retrieves a campus with its instructor roster
// @Summary Get campus details
// @Tags campuses
// @Produce json
// @Param id path int true "Campus ID"
// @Success 200 {object} dto.APIResponse{data=dto.CampusResponse}
// @Failure 404 {object} dto.APIResponse "Campus not found"
// @Router /campuses/{id} [get]
func (c *CampusController) GetCampus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	campus, err := c.campusService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewCampusResponse(campus)))
}
