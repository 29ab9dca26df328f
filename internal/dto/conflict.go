package dto

import "github.com/noah-isme/campus-enroll-api/internal/models"

// ConflictCourse summarises one side of a clash for display.
type ConflictCourse struct {
	CourseID  string           `json:"course_id"`
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Days      []models.Weekday `json:"days"`
	StartTime models.TimeOfDay `json:"start_time"`
	EndTime   models.TimeOfDay `json:"end_time"`
}

// ConflictReport describes one conflicted enrollment on an instructor's
// roster together with every peer course it clashes with.
type ConflictReport struct {
	EnrollmentID string           `json:"enrollment_id"`
	StudentID    string           `json:"student_id"`
	StudentName  string           `json:"student_name"`
	StudentEmail string           `json:"student_email"`
	Course       ConflictCourse   `json:"course"`
	Conflicting  []ConflictCourse `json:"conflicting_courses"`
}

// StudentConflictGroup gathers one student's reports for per-student
// rendering ("student X conflicts with courses A, B").
type StudentConflictGroup struct {
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	Reports     []ConflictReport `json:"reports"`
}

// ConflictListResponse carries the flat reports plus the per-student view.
type ConflictListResponse struct {
	Reports  []ConflictReport       `json:"reports"`
	Students []StudentConflictGroup `json:"students"`
}

// ResolveConflictRequest is the operator command payload.
type ResolveConflictRequest struct {
	Reason string `json:"reason" validate:"required"`
}
