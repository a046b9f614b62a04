package dto

// DateLayout is the layout of group course dates
const DateLayout = "2006-01-02"

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// CreateGroupCourseRequest represents group course creation data
type CreateGroupCourseRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	From string `json:"from" binding:"required,datetime=2006-01-02"`
	To   string `json:"to" binding:"required,datetime=2006-01-02"`
}

// CourseResponse represents a course
type CourseResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GroupCourseResponse represents a group course
type GroupCourseResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	From string `json:"from" example:"2024-09-01"`
	To   string `json:"to" example:"2024-12-20"`
}
