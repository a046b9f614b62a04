package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vdab/fietsen/internal/app/models/dto"
	"github.com/vdab/fietsen/internal/app/services"
	"github.com/vdab/fietsen/internal/middleware"
)

// CourseController handles course-related HTTP requests
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course name"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse}
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.CourseResponse{ID: course.ID, Name: course.Name}))
}

// CreateGroupCourse handles group course creation
// @Summary Create a group course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupCourseRequest true "Group course"
// @Success 201 {object} dto.APIResponse{data=dto.GroupCourseResponse}
// @Router /courses/groups [post]
func (c *CourseController) CreateGroupCourse(ctx *gin.Context) {
	var req dto.CreateGroupCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	// the datetime binding already checked both layouts
	from, _ := time.Parse(dto.DateLayout, req.From)
	to, _ := time.Parse(dto.DateLayout, req.To)

	course, err := c.courseService.CreateGroupCourse(ctx, req.Name, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.GroupCourseResponse{
		ID:   course.ID,
		Name: course.Name,
		From: course.From.Format(dto.DateLayout),
		To:   course.To.Format(dto.DateLayout),
	}))
}

// ListCourses lists all courses, group courses included
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse}
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, dto.CourseResponse{ID: course.ID, Name: course.Name})
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(out))
}

// ListGroupCourses lists the group courses by start date
// @Summary List group courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.GroupCourseResponse}
// @Router /courses/groups [get]
func (c *CourseController) ListGroupCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListGroupCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]dto.GroupCourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, dto.GroupCourseResponse{
			ID:   course.ID,
			Name: course.Name,
			From: course.From.Format(dto.DateLayout),
			To:   course.To.Format(dto.DateLayout),
		})
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(out))
}
