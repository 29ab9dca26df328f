package models

import (
	"time"

	"github.com/lib/pq"
)

// CourseStatus marks whether a course is open to enrollment.
type CourseStatus string

// Possible course statuses.
const (
	CourseStatusActive   CourseStatus = "active"
	CourseStatusArchived CourseStatus = "archived"
)

// Course represents a taught course with its weekly meeting window.
type Course struct {
	ID             string         `db:"id" json:"id"`
	Code           string         `db:"code" json:"code"`
	Name           string         `db:"name" json:"name"`
	Description    string         `db:"description" json:"description,omitempty"`
	Credits        int            `db:"credits" json:"credits"`
	LectureHours   int            `db:"lecture_hours" json:"lecture_hours"`
	TutorialHours  int            `db:"tutorial_hours" json:"tutorial_hours"`
	PracticalHours int            `db:"practical_hours" json:"practical_hours"`
	SelfStudyHours int            `db:"self_study_hours" json:"self_study_hours"`
	Days           pq.StringArray `db:"days" json:"days"`
	StartTime      TimeOfDay      `db:"start_time" json:"start_time"`
	EndTime        TimeOfDay      `db:"end_time" json:"end_time"`
	Semester       string         `db:"semester" json:"semester"`
	MaxStudents    int            `db:"max_students" json:"max_students"`
	RoomNumber     string         `db:"room_number" json:"room_number,omitempty"`
	InstructorID   string         `db:"instructor_id" json:"instructor_id"`
	Status         CourseStatus   `db:"status" json:"status"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// CourseWithCount enriches Course with its active enrollment count.
type CourseWithCount struct {
	Course
	EnrolledCount int `db:"enrolled_count" json:"enrolled_count"`
}

// CourseFilter describes query params for listing courses.
type CourseFilter struct {
	Search       string
	InstructorID string
	Status       CourseStatus
	Page         int
	PageSize     int
}

// Window rebuilds the course's weekly window. Rows are validated on insert,
// so a failure here means the stored row predates validation or was edited
// out of band; callers must treat it as data corruption, not user error.
func (c *Course) Window() (WeeklyWindow, error) {
	days, err := ParseWeekdays(c.Days)
	if err != nil {
		return WeeklyWindow{}, err
	}
	return NewWeeklyWindow(days, c.StartTime, c.EndTime)
}

// Activity converts the course to a tagged activity for grid building and
// conflict checks.
func (c *Course) Activity(category ActivityCategory) (Activity, error) {
	window, err := c.Window()
	if err != nil {
		return Activity{}, err
	}
	return Activity{
		CourseID: c.ID,
		Code:     c.Code,
		Name:     c.Name,
		Room:     c.RoomNumber,
		Category: category,
		Window:   window,
	}, nil
}
