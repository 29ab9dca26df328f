package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-enroll-api/internal/dto"
	"github.com/noah-isme/campus-enroll-api/internal/models"
	appErrors "github.com/noah-isme/campus-enroll-api/pkg/errors"
)

type dashboardEnrollmentReader interface {
	ListActiveDetailsByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
}

type dashboardCourseReader interface {
	ListByInstructor(ctx context.Context, instructorID string) ([]models.CourseWithCount, error)
	CountActive(ctx context.Context) (int, error)
}

type conflictCounter interface {
	CountForInstructor(ctx context.Context, instructorID string) (int, error)
}

// DashboardService assembles landing page summaries. Summaries are cached
// under the dash: prefix; every mutation path invalidates that prefix.
type DashboardService struct {
	enrollments dashboardEnrollmentReader
	courses     dashboardCourseReader
	conflicts   conflictCounter
	cache       *CacheService
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(enrollments dashboardEnrollmentReader, courses dashboardCourseReader, conflicts conflictCounter, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{enrollments: enrollments, courses: courses, conflicts: conflicts, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// StudentSummary returns the student's stat cards.
func (s *DashboardService) StudentSummary(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, error) {
	key := fmt.Sprintf("dash:student:%s", studentID)
	var cached dto.StudentDashboardResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	details, err := s.enrollments.ListActiveDetailsByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	available, err := s.courses.CountActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count courses")
	}

	credits := 0
	for _, d := range details {
		credits += d.CourseCredits
	}
	summary := &dto.StudentDashboardResponse{
		EnrolledCourses:  len(details),
		TotalCredits:     credits,
		AvailableCourses: available,
	}
	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.logger.Debug("dashboard cache write failed", zap.Error(err))
	}
	return summary, nil
}

// FacultySummary returns the instructor's stat cards, including the number
// of enrollments currently involved in a schedule conflict.
func (s *DashboardService) FacultySummary(ctx context.Context, instructorID string) (*dto.FacultyDashboardResponse, error) {
	key := fmt.Sprintf("dash:faculty:%s", instructorID)
	var cached dto.FacultyDashboardResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	courses, err := s.courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	students := 0
	for _, c := range courses {
		students += c.EnrolledCount
	}
	conflicts, err := s.conflicts.CountForInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	summary := &dto.FacultyDashboardResponse{
		TeachingCourses:  len(courses),
		EnrolledStudents: students,
		OpenConflicts:    conflicts,
	}
	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.logger.Debug("dashboard cache write failed", zap.Error(err))
	}
	return summary, nil
}
