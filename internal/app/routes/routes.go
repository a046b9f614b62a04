package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vdab/fietsen/internal/app/controllers"
	"github.com/vdab/fietsen/internal/pkg/validation"
)

// Controllers groups the controllers the router dispatches to
type Controllers struct {
	Instructor     *controllers.InstructorController
	Campus         *controllers.CampusController
	Responsibility *controllers.ResponsibilityController
	Course         *controllers.CourseController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	validation.RegisterGinValidators()

	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	instructors := v1.Group("/instructors")
	{
		instructors.GET("", c.Instructor.ListInstructors)
		instructors.POST("", c.Instructor.CreateInstructor)
		instructors.POST("/raise", c.Instructor.BulkRaise)
		instructors.GET("/salary-range", c.Instructor.ListBySalaryRange)
		instructors.GET("/emails", c.Instructor.EmailAddresses)
		instructors.GET("/id-emails", c.Instructor.IDAndEmails)
		instructors.GET("/stats/max-salary", c.Instructor.MaxSalary)
		instructors.GET("/stats/per-salary", c.Instructor.CountPerSalary)

		instructors.GET("/:id", c.Instructor.GetInstructor)
		instructors.DELETE("/:id", c.Instructor.DeleteInstructor)
		instructors.POST("/:id/raise", c.Instructor.RaiseSalary)
		instructors.POST("/:id/nicknames/:nickname", c.Instructor.AddNickname)
		instructors.DELETE("/:id/nicknames/:nickname", c.Instructor.RemoveNickname)
		instructors.PUT("/:id/responsibilities/:rid", c.Instructor.AssignResponsibility)
		instructors.DELETE("/:id/responsibilities/:rid", c.Instructor.UnassignResponsibility)
	}

	campuses := v1.Group("/campuses")
	{
		campuses.POST("", c.Campus.CreateCampus)
		campuses.GET("/:id", c.Campus.GetCampus)
	}

	responsibilities := v1.Group("/responsibilities")
	{
		responsibilities.GET("", c.Responsibility.FindResponsibility)
		responsibilities.POST("", c.Responsibility.CreateResponsibility)
		responsibilities.GET("/:id", c.Responsibility.GetResponsibility)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", c.Course.ListCourses)
		courses.POST("", c.Course.CreateCourse)
		courses.GET("/groups", c.Course.ListGroupCourses)
		courses.POST("/groups", c.Course.CreateGroupCourse)
	}
}
