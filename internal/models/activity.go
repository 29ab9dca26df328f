package models

// ActivityCategory distinguishes how a time-boxed activity relates to the
// user whose week is being rendered.
type ActivityCategory string

// Activity categories.
const (
	ActivityTeaching ActivityCategory = "teaching"
	ActivityEnrolled ActivityCategory = "enrolled"
)

// Activity is a labelled weekly window belonging to one course. The engine
// treats it as read-only input; identity is the course ID plus the window's
// provenance, never the window value.
type Activity struct {
	CourseID string           `json:"course_id"`
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Room     string           `json:"room_number,omitempty"`
	Category ActivityCategory `json:"category"`
	Window   WeeklyWindow     `json:"window"`
}
