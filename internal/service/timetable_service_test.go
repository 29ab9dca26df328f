package service

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-enroll-api/internal/models"
)

type mockTimetableEnrollments struct {
	byStudent map[string][]models.EnrollmentDetail
}

func (m *mockTimetableEnrollments) ListActiveDetailsByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	return m.byStudent[studentID], nil
}

type mockTimetableCourses struct {
	byInstructor map[string][]models.CourseWithCount
}

func (m *mockTimetableCourses) ListByInstructor(ctx context.Context, instructorID string) ([]models.CourseWithCount, error) {
	return m.byInstructor[instructorID], nil
}

func timetableDetail(id, courseID, code string, days []string, start, end string) models.EnrollmentDetail {
	startT, _ := models.ParseTimeOfDay(start)
	endT, _ := models.ParseTimeOfDay(end)
	return models.EnrollmentDetail{
		Enrollment: models.Enrollment{ID: id, StudentID: "alice", CourseID: courseID, Status: models.EnrollmentStatusEnrolled},
		CourseCode:  code,
		CourseName:  "Course " + code,
		CourseDays:  pq.StringArray(days),
		CourseStart: startT,
		CourseEnd:   endT,
	}
}

func taughtCourse(id, code string, days []string, start, end string) models.CourseWithCount {
	startT, _ := models.ParseTimeOfDay(start)
	endT, _ := models.ParseTimeOfDay(end)
	return models.CourseWithCount{Course: models.Course{
		ID:        id,
		Code:      code,
		Name:      "Course " + code,
		Days:      pq.StringArray(days),
		StartTime: startT,
		EndTime:   endT,
		Status:    models.CourseStatusActive,
	}}
}

func TestStudentGridPlacesEnrollments(t *testing.T) {
	enrollments := &mockTimetableEnrollments{byStudent: map[string][]models.EnrollmentDetail{
		"alice": {
			timetableDetail("e1", "c1", "CS101", []string{"Monday", "Wednesday"}, "09:00", "11:00"),
		},
	}}

	svc := NewTimetableService(enrollments, &mockTimetableCourses{}, TimetableConfig{}, nil)
	grid, err := svc.StudentGrid(context.Background(), "alice")
	require.NoError(t, err)

	require.Len(t, grid.Days, 5)
	require.Len(t, grid.Rows, 11)

	// 09:00 and 10:00 anchors carry the course on Monday and Wednesday,
	// 11:00 does not (end is exclusive).
	nine := grid.Rows[1]
	require.Len(t, nine.Cells, 2)
	assert.Equal(t, models.Monday, nine.Cells[0].Day)
	assert.Equal(t, models.Wednesday, nine.Cells[1].Day)
	assert.Equal(t, "CS101", nine.Cells[0].Code)
	assert.Equal(t, models.ActivityEnrolled, nine.Cells[0].Category)

	assert.Len(t, grid.Rows[2].Cells, 2)
	assert.Empty(t, grid.Rows[3].Cells)
}

func TestStudentGridEmpty(t *testing.T) {
	svc := NewTimetableService(&mockTimetableEnrollments{}, &mockTimetableCourses{}, TimetableConfig{}, nil)
	grid, err := svc.StudentGrid(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, grid.Rows, 11)
	for _, row := range grid.Rows {
		assert.Empty(t, row.Cells)
	}
}

func TestStaffGridTeachingWinsCell(t *testing.T) {
	enrollments := &mockTimetableEnrollments{byStudent: map[string][]models.EnrollmentDetail{
		"staff": {
			timetableDetail("e1", "c2", "MA201", []string{"Monday"}, "09:00", "10:00"),
		},
	}}
	courses := &mockTimetableCourses{byInstructor: map[string][]models.CourseWithCount{
		"staff": {taughtCourse("c1", "CS101", []string{"Monday"}, "09:00", "10:00")},
	}}

	svc := NewTimetableService(enrollments, courses, TimetableConfig{}, nil)
	grid, err := svc.StaffGrid(context.Background(), "staff")
	require.NoError(t, err)

	nine := grid.Rows[1]
	require.Len(t, nine.Cells, 1)
	assert.Equal(t, "CS101", nine.Cells[0].Code)
	assert.Equal(t, models.ActivityTeaching, nine.Cells[0].Category)
}

func TestStudentGridSubSlotCourseInvisible(t *testing.T) {
	enrollments := &mockTimetableEnrollments{byStudent: map[string][]models.EnrollmentDetail{
		"alice": {
			timetableDetail("e1", "c1", "CS101", []string{"Friday"}, "09:15", "09:45"),
		},
	}}

	svc := NewTimetableService(enrollments, &mockTimetableCourses{}, TimetableConfig{}, nil)
	grid, err := svc.StudentGrid(context.Background(), "alice")
	require.NoError(t, err)
	for _, row := range grid.Rows {
		assert.Empty(t, row.Cells)
	}
}

func TestActivitiesOrderForExport(t *testing.T) {
	enrollments := &mockTimetableEnrollments{byStudent: map[string][]models.EnrollmentDetail{
		"staff": {
			timetableDetail("e1", "c2", "MA201", []string{"Tuesday"}, "09:00", "10:00"),
		},
	}}
	courses := &mockTimetableCourses{byInstructor: map[string][]models.CourseWithCount{
		"staff": {taughtCourse("c1", "CS101", []string{"Monday"}, "09:00", "10:00")},
	}}

	svc := NewTimetableService(enrollments, courses, TimetableConfig{}, nil)
	activities, err := svc.Activities(context.Background(), "staff", true)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "CS101", activities[0].Code)
	assert.Equal(t, "MA201", activities[1].Code)

	enrolledOnly, err := svc.Activities(context.Background(), "staff", false)
	require.NoError(t, err)
	require.Len(t, enrolledOnly, 1)
	assert.Equal(t, "MA201", enrolledOnly[0].Code)
}
