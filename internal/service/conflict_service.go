package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-enroll-api/internal/dto"
	"github.com/noah-isme/campus-enroll-api/internal/models"
	"github.com/noah-isme/campus-enroll-api/internal/repository"
	appErrors "github.com/noah-isme/campus-enroll-api/pkg/errors"
)

type conflictEnrollmentRepository interface {
	ListActiveDetailsByInstructor(ctx context.Context, instructorID string) ([]models.EnrollmentDetail, error)
	ListActiveDetails(ctx context.Context) ([]models.EnrollmentDetail, error)
	FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error)
	DropWithLog(ctx context.Context, id string, entry *models.CourseLog) error
}

// ConflictService detects schedule clashes on an instructor's roster and
// resolves them by dropping enrollments. Detection itself is pure; this
// service owns all store access around it.
type ConflictService struct {
	repo      conflictEnrollmentRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConflictService constructs ConflictService.
func NewConflictService(repo conflictEnrollmentRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ConflictService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// ListForInstructor enumerates conflicts for every enrolled student on the
// instructor's roster. Peers are batch-fetched once and grouped in memory;
// a failed fetch aborts the whole enumeration rather than serving a partial
// report.
func (s *ConflictService) ListForInstructor(ctx context.Context, instructorID string) (*dto.ConflictListResponse, error) {
	if instructorID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "instructor id is required")
	}

	roster, err := s.repo.ListActiveDetailsByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	active, err := s.repo.ListActiveDetails(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active enrollments")
	}

	rosterRefs, details, err := toRefs(roster)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid enrollment window")
	}
	activeRefs, _, err := toRefs(active)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid enrollment window")
	}

	done := s.observeScan()
	reports := detectConflicts(rosterRefs, activeRefs)
	done(len(reports))

	return buildConflictResponse(reports, details), nil
}

// CountForInstructor returns the number of conflicted roster enrollments.
func (s *ConflictService) CountForInstructor(ctx context.Context, instructorID string) (int, error) {
	resp, err := s.ListForInstructor(ctx, instructorID)
	if err != nil {
		return 0, err
	}
	return len(resp.Reports), nil
}

// Resolve drops the enrollment and appends the resolution log entry as one
// atomic effect. A concurrent resolve on the same enrollment loses the
// conditional update and fails without writing a log row.
func (s *ConflictService) Resolve(ctx context.Context, enrollmentID string, operator *models.JWTClaims, req dto.ResolveConflictRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resolve payload")
	}
	if operator == nil {
		return nil, appErrors.ErrUnauthorized
	}

	detail, err := s.repo.FindDetailByID(ctx, enrollmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if detail.Status != models.EnrollmentStatusEnrolled {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment already dropped")
	}

	metadata, err := json.Marshal(map[string]interface{}{
		"enrollment_id": detail.ID,
		"student_name":  detail.StudentName,
		"reason":        req.Reason,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode log metadata")
	}

	entry := &models.CourseLog{
		CourseID:    detail.CourseID,
		ActionType:  models.LogActionConflictResolution,
		Description: fmt.Sprintf("Schedule conflict resolved: %s was dropped from %s", detail.StudentName, detail.CourseCode),
		CreatedBy:   operator.UserID,
		Metadata:    metadata,
	}

	if err := s.repo.DropWithLog(ctx, enrollmentID, entry); err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotActive) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment already dropped")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve conflict")
	}

	s.logger.Info("conflict resolved",
		zap.String("enrollment_id", enrollmentID),
		zap.String("course_code", detail.CourseCode),
		zap.String("operator", operator.UserID),
	)

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, "dash:*")
	}

	resolved, err := s.repo.FindDetailByID(ctx, enrollmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload enrollment")
	}
	return resolved, nil
}

func (s *ConflictService) observeScan() func(found int) {
	if s.metrics == nil {
		return func(int) {}
	}
	return s.metrics.StartConflictScan()
}

// toRefs converts detail rows to engine refs, keeping the details addressable
// by enrollment ID for report rendering.
func toRefs(details []models.EnrollmentDetail) ([]models.EnrollmentRef, map[string]models.EnrollmentDetail, error) {
	refs := make([]models.EnrollmentRef, 0, len(details))
	byID := make(map[string]models.EnrollmentDetail, len(details))
	for i := range details {
		ref, err := details[i].Ref()
		if err != nil {
			return nil, nil, fmt.Errorf("enrollment %s: %w", details[i].ID, err)
		}
		refs = append(refs, ref)
		byID[details[i].ID] = details[i]
	}
	return refs, byID, nil
}

func buildConflictResponse(reports []models.ConflictReport, details map[string]models.EnrollmentDetail) *dto.ConflictListResponse {
	resp := &dto.ConflictListResponse{Reports: make([]dto.ConflictReport, 0, len(reports))}
	groupIdx := make(map[string]int)

	for _, report := range reports {
		detail := details[report.Enrollment.EnrollmentID]
		item := dto.ConflictReport{
			EnrollmentID: report.Enrollment.EnrollmentID,
			StudentID:    report.Enrollment.StudentID,
			StudentName:  detail.StudentName,
			StudentEmail: detail.StudentMail,
			Course:       conflictCourse(report.Enrollment.Activity),
			Conflicting:  make([]dto.ConflictCourse, 0, len(report.Conflicting)),
		}
		for _, activity := range report.Conflicting {
			item.Conflicting = append(item.Conflicting, conflictCourse(activity))
		}
		resp.Reports = append(resp.Reports, item)

		idx, ok := groupIdx[item.StudentID]
		if !ok {
			idx = len(resp.Students)
			groupIdx[item.StudentID] = idx
			resp.Students = append(resp.Students, dto.StudentConflictGroup{
				StudentID:   item.StudentID,
				StudentName: item.StudentName,
			})
		}
		resp.Students[idx].Reports = append(resp.Students[idx].Reports, item)
	}
	return resp
}

func conflictCourse(activity models.Activity) dto.ConflictCourse {
	return dto.ConflictCourse{
		CourseID:  activity.CourseID,
		Code:      activity.Code,
		Name:      activity.Name,
		Days:      activity.Window.Days,
		StartTime: activity.Window.Start,
		EndTime:   activity.Window.End,
	}
}
