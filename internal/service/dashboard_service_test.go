package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-enroll-api/internal/models"
)

type mockDashboardEnrollments struct {
	byStudent map[string][]models.EnrollmentDetail
}

func (m *mockDashboardEnrollments) ListActiveDetailsByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	return m.byStudent[studentID], nil
}

type mockDashboardCourses struct {
	byInstructor map[string][]models.CourseWithCount
	activeCount  int
}

func (m *mockDashboardCourses) ListByInstructor(ctx context.Context, instructorID string) ([]models.CourseWithCount, error) {
	return m.byInstructor[instructorID], nil
}

func (m *mockDashboardCourses) CountActive(ctx context.Context) (int, error) {
	return m.activeCount, nil
}

type mockConflictCounter struct {
	count int
}

func (m *mockConflictCounter) CountForInstructor(ctx context.Context, instructorID string) (int, error) {
	return m.count, nil
}

func TestStudentSummary(t *testing.T) {
	enrollments := &mockDashboardEnrollments{byStudent: map[string][]models.EnrollmentDetail{
		"alice": {
			{CourseCredits: 3},
			{CourseCredits: 4},
		},
	}}
	courses := &mockDashboardCourses{activeCount: 12}

	svc := NewDashboardService(enrollments, courses, &mockConflictCounter{}, nil, 0, nil)
	summary, err := svc.StudentSummary(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.EnrolledCourses)
	assert.Equal(t, 7, summary.TotalCredits)
	assert.Equal(t, 12, summary.AvailableCourses)
}

func TestFacultySummary(t *testing.T) {
	courses := &mockDashboardCourses{byInstructor: map[string][]models.CourseWithCount{
		"prof": {
			{EnrolledCount: 20},
			{EnrolledCount: 15},
		},
	}}
	conflicts := &mockConflictCounter{count: 3}

	svc := NewDashboardService(&mockDashboardEnrollments{}, courses, conflicts, nil, 0, nil)
	summary, err := svc.FacultySummary(context.Background(), "prof")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TeachingCourses)
	assert.Equal(t, 35, summary.EnrolledStudents)
	assert.Equal(t, 3, summary.OpenConflicts)
}
