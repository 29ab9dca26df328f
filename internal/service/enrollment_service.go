package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-enroll-api/internal/models"
	"github.com/noah-isme/campus-enroll-api/internal/repository"
	appErrors "github.com/noah-isme/campus-enroll-api/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error)
	ExistsActive(ctx context.Context, studentID, courseID string) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	DropWithLog(ctx context.Context, id string, entry *models.CourseLog) error
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type logWriter interface {
	Create(ctx context.Context, entry *models.CourseLog) error
}

// EnrollRequest describes enrollment creation payload.
type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// EnrollmentService orchestrates enrollment workflows.
type EnrollmentService struct {
	repo      enrollmentRepository
	courses   courseReader
	logs      logWriter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, courses courseReader, logs logWriter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, courses: courses, logs: logs, cache: cache, validator: validate, logger: logger}
}

// List returns enrollments with pagination metadata.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, *models.Pagination, error) {
	enrollments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return enrollments, pagination, nil
}

// Enroll registers the student in a course.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID string, req EnrollRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if studentID == "" {
		return nil, appErrors.ErrUnauthorized
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if course.Status != models.CourseStatusActive {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "course not open for enrollment")
	}

	exists, err := s.repo.ExistsActive(ctx, studentID, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate enrollment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "already enrolled in this course")
	}

	enrollment := &models.Enrollment{StudentID: studentID, CourseID: req.CourseID, Status: models.EnrollmentStatusEnrolled}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	detail, err := s.repo.FindDetailByID(ctx, enrollment.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment detail")
	}

	metadata, _ := json.Marshal(map[string]string{"enrollment_id": detail.ID, "student_name": detail.StudentName})
	if err := s.logs.Create(ctx, &models.CourseLog{
		CourseID:    detail.CourseID,
		ActionType:  models.LogActionEnrollment,
		Description: fmt.Sprintf("%s enrolled in %s", detail.StudentName, detail.CourseCode),
		CreatedBy:   studentID,
		Metadata:    metadata,
	}); err != nil {
		s.logger.Warn("failed to record enrollment log", zap.Error(err))
	}

	s.invalidateDashboards(ctx)
	return detail, nil
}

// Drop marks the student's own enrollment as dropped. The status change and
// the drop log entry commit in the same transaction.
func (s *EnrollmentService) Drop(ctx context.Context, id, studentID string) (*models.EnrollmentDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if detail.StudentID != studentID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot drop another student's enrollment")
	}
	if detail.Status != models.EnrollmentStatusEnrolled {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment already inactive")
	}

	metadata, _ := json.Marshal(map[string]string{"enrollment_id": detail.ID, "student_name": detail.StudentName})
	entry := &models.CourseLog{
		CourseID:    detail.CourseID,
		ActionType:  models.LogActionDrop,
		Description: fmt.Sprintf("%s dropped %s", detail.StudentName, detail.CourseCode),
		CreatedBy:   studentID,
		Metadata:    metadata,
	}
	if err := s.repo.DropWithLog(ctx, id, entry); err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotActive) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment already inactive")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to drop enrollment")
	}

	s.invalidateDashboards(ctx)

	dropped, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment detail")
	}
	return dropped, nil
}

func (s *EnrollmentService) invalidateDashboards(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, "dash:*")
	}
}
