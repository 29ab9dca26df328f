package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-enroll-api/internal/models"
	appErrors "github.com/noah-isme/campus-enroll-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.CourseWithCount, error)
	Create(ctx context.Context, course *models.Course) error
}

// CreateCourseRequest describes the payload for course creation.
type CreateCourseRequest struct {
	Code           string   `json:"code" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	Credits        int      `json:"credits" validate:"gte=0"`
	LectureHours   int      `json:"lecture_hours" validate:"gte=0"`
	TutorialHours  int      `json:"tutorial_hours" validate:"gte=0"`
	PracticalHours int      `json:"practical_hours" validate:"gte=0"`
	SelfStudyHours int      `json:"self_study_hours" validate:"gte=0"`
	Days           []string `json:"days" validate:"required,min=1"`
	StartTime      string   `json:"start_time" validate:"required"`
	EndTime        string   `json:"end_time" validate:"required"`
	Semester       string   `json:"semester" validate:"required"`
	MaxStudents    int      `json:"max_students" validate:"gt=0"`
	RoomNumber     string   `json:"room_number"`
}

// CourseService orchestrates course catalogue workflows.
type CourseService struct {
	repo      courseRepository
	logs      logWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseRepository, logs logWriter, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, logs: logs, validator: validate, logger: logger}
}

// List returns courses matching the filter with pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return courses, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get fetches a single course by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// ListByInstructor returns the instructor's courses with enrollment counts.
func (s *CourseService) ListByInstructor(ctx context.Context, instructorID string) ([]models.CourseWithCount, error) {
	courses, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructor courses")
	}
	return courses, nil
}

// Create validates the schedule window and persists a new course.
func (s *CourseService) Create(ctx context.Context, instructorID string, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	days, err := models.ParseWeekdays(req.Days)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	start, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
	}
	end, err := models.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end time")
	}
	// Window construction enforces ordering and de-duplication; a course with
	// an unbuildable window could never be scanned for conflicts later.
	if _, err := models.NewWeeklyWindow(days, start, end); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	course := &models.Course{
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		Credits:        req.Credits,
		LectureHours:   req.LectureHours,
		TutorialHours:  req.TutorialHours,
		PracticalHours: req.PracticalHours,
		SelfStudyHours: req.SelfStudyHours,
		Days:           pq.StringArray(req.Days),
		StartTime:      start,
		EndTime:        end,
		Semester:       req.Semester,
		MaxStudents:    req.MaxStudents,
		RoomNumber:     req.RoomNumber,
		InstructorID:   instructorID,
		Status:         models.CourseStatusActive,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	metadata, _ := json.Marshal(map[string]string{"course_code": course.Code})
	if err := s.logs.Create(ctx, &models.CourseLog{
		CourseID:    course.ID,
		ActionType:  models.LogActionCourseCreated,
		Description: fmt.Sprintf("Course %s (%s) created", course.Code, course.Name),
		CreatedBy:   instructorID,
		Metadata:    metadata,
	}); err != nil {
		s.logger.Warn("failed to record course creation log", zap.Error(err))
	}

	return course, nil
}
