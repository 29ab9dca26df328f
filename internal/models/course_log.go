package models

import "time"

// CourseLog action types. The conflict resolution flow writes its entry in
// the same transaction as the status change, so a resolution log without a
// matching drop (or vice versa) never exists.
const (
	LogActionEnrollment         = "enrollment"
	LogActionDrop               = "drop"
	LogActionCourseCreated      = "course_created"
	LogActionCourseUpdate       = "course_update"
	LogActionConflictResolution = "conflict_resolution"
)

// CourseLog represents one entry in the course activity trail.
type CourseLog struct {
	ID          string    `db:"id" json:"id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	ActionType  string    `db:"action_type" json:"action_type"`
	Description string    `db:"description" json:"description"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	Metadata    []byte    `db:"metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CourseLogDetail enriches CourseLog with the course label for feeds.
type CourseLogDetail struct {
	CourseLog
	CourseCode string `db:"course_code" json:"course_code"`
	CourseName string `db:"course_name" json:"course_name"`
}
