package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

type Enrollment struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	CourseID    string           `json:"course_id"`
	Progress    int              `json:"progress"` // 0-100
	Status      EnrollmentStatus `json:"status"`
	EnrolledAt  time.Time        `json:"enrolled_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`

	// Course is populated on listing, joined from the courses table.
	Course *Course `json:"course,omitempty"`
}

// EnrollmentStats summarizes one user's enrollments for the dashboard.
type EnrollmentStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}
