package dto

// StudentDashboardResponse backs the student landing page stat cards.
type StudentDashboardResponse struct {
	EnrolledCourses  int `json:"enrolled_courses"`
	TotalCredits     int `json:"total_credits"`
	AvailableCourses int `json:"available_courses"`
}

// FacultyDashboardResponse backs the instructor landing page.
type FacultyDashboardResponse struct {
	TeachingCourses  int `json:"teaching_courses"`
	EnrolledStudents int `json:"enrolled_students"`
	OpenConflicts    int `json:"open_conflicts"`
}
