package models

import (
	"strings"
	"time"

	"github.com/vdab/fietsen/internal/pkg/apperrors"
)

// Course is a named course
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GroupCourse is a course given to a group between two dates
type GroupCourse struct {
	Course
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NewCourse creates a course
func NewCourse(name string) (*Course, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("course name cannot be empty")
	}
	return &Course{Name: name}, nil
}

// NewGroupCourse creates a group course; the end date may not precede the start date
func NewGroupCourse(name string, from, to time.Time) (*GroupCourse, error) {
	course, err := NewCourse(name)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, apperrors.NewValidationError("group course ends before it starts")
	}
	return &GroupCourse{Course: *course, From: from, To: to}, nil
}
