package models

import (
	"time"

	"github.com/lib/pq"
)

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses. Dropped is terminal for the conflict
// resolution flow; re-enrollment creates a fresh row.
const (
	EnrollmentStatusEnrolled EnrollmentStatus = "enrolled"
	EnrollmentStatusDropped  EnrollmentStatus = "dropped"
)

// Enrollment captures a student's registration to a course.
type Enrollment struct {
	ID         string           `db:"id" json:"id"`
	StudentID  string           `db:"student_id" json:"student_id"`
	CourseID   string           `db:"course_id" json:"course_id"`
	Status     EnrollmentStatus `db:"status" json:"status"`
	EnrolledAt time.Time        `db:"enrolled_at" json:"enrolled_at"`
	DroppedAt  *time.Time       `db:"dropped_at" json:"dropped_at,omitempty"`
}

// EnrollmentDetail enriches Enrollment with student and course info needed
// for conflict reports and roster views.
type EnrollmentDetail struct {
	Enrollment
	StudentName   string         `db:"student_name" json:"student_name"`
	StudentMail   string         `db:"student_email" json:"student_email"`
	CourseCode    string         `db:"course_code" json:"course_code"`
	CourseName    string         `db:"course_name" json:"course_name"`
	CourseCredits int            `db:"course_credits" json:"course_credits"`
	CourseDays    pq.StringArray `db:"course_days" json:"course_days"`
	CourseStart   TimeOfDay      `db:"course_start" json:"course_start"`
	CourseEnd     TimeOfDay      `db:"course_end" json:"course_end"`
	CourseRoom    string         `db:"course_room" json:"course_room,omitempty"`
}

// EnrollmentFilter provides filters for listing enrollments.
type EnrollmentFilter struct {
	StudentID string
	CourseID  string
	Status    EnrollmentStatus
	Page      int
	PageSize  int
}

// Ref builds the engine-facing reference for this enrollment. The activity
// is always categorised as enrolled; teaching activities never carry an
// enrollment row.
func (d *EnrollmentDetail) Ref() (EnrollmentRef, error) {
	days, err := ParseWeekdays(d.CourseDays)
	if err != nil {
		return EnrollmentRef{}, err
	}
	window, err := NewWeeklyWindow(days, d.CourseStart, d.CourseEnd)
	if err != nil {
		return EnrollmentRef{}, err
	}
	return EnrollmentRef{
		EnrollmentID: d.ID,
		StudentID:    d.StudentID,
		Activity: Activity{
			CourseID: d.CourseID,
			Code:     d.CourseCode,
			Name:     d.CourseName,
			Room:     d.CourseRoom,
			Category: ActivityEnrolled,
			Window:   window,
		},
	}, nil
}
