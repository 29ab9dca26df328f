package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-enroll-api/internal/dto"
	"github.com/noah-isme/campus-enroll-api/internal/models"
	appErrors "github.com/noah-isme/campus-enroll-api/pkg/errors"
)

type timetableEnrollmentReader interface {
	ListActiveDetailsByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
}

type timetableCourseReader interface {
	ListByInstructor(ctx context.Context, instructorID string) ([]models.CourseWithCount, error)
}

// TimetableConfig fixes the rendered week: its day columns and slot anchors.
type TimetableConfig struct {
	Days  []models.Weekday
	Slots []models.TimeOfDay
}

// TimetableService renders weekly grids for students and staff. Grid
// construction is pure; the service only fetches activities and maps the
// result for presentation.
type TimetableService struct {
	enrollments timetableEnrollmentReader
	courses     timetableCourseReader
	cfg         TimetableConfig
	logger      *zap.Logger
}

// NewTimetableService constructs TimetableService.
func NewTimetableService(enrollments timetableEnrollmentReader, courses timetableCourseReader, cfg TimetableConfig, logger *zap.Logger) *TimetableService {
	if len(cfg.Days) == 0 {
		cfg.Days = models.DefaultWeek
	}
	if len(cfg.Slots) == 0 {
		start, _ := models.ParseTimeOfDay("08:00")
		end, _ := models.ParseTimeOfDay("18:00")
		cfg.Slots = models.SlotTable(start, end, 60)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{enrollments: enrollments, courses: courses, cfg: cfg, logger: logger}
}

// StudentGrid renders the weekly grid of one student's active enrollments.
func (s *TimetableService) StudentGrid(ctx context.Context, studentID string) (*dto.TimetableResponse, error) {
	activities, err := s.enrolledActivities(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.render(activities), nil
}

// StaffGrid renders the combined weekly grid of taught and enrolled
// courses. Teaching activities come first so they win grid cells when a
// user both teaches and attends overlapping courses.
func (s *TimetableService) StaffGrid(ctx context.Context, userID string) (*dto.TimetableResponse, error) {
	taught, err := s.courses.ListByInstructor(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load taught courses")
	}

	activities := make([]models.Activity, 0, len(taught))
	for i := range taught {
		activity, err := taught[i].Activity(models.ActivityTeaching)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid course window")
		}
		activities = append(activities, activity)
	}

	enrolled, err := s.enrolledActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	activities = append(activities, enrolled...)

	return s.render(activities), nil
}

// Activities exposes the merged activity list used for exports, in the same
// order the grid consumes it.
func (s *TimetableService) Activities(ctx context.Context, userID string, includeTeaching bool) ([]models.Activity, error) {
	if !includeTeaching {
		return s.enrolledActivities(ctx, userID)
	}
	taught, err := s.courses.ListByInstructor(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load taught courses")
	}
	activities := make([]models.Activity, 0, len(taught))
	for i := range taught {
		activity, err := taught[i].Activity(models.ActivityTeaching)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid course window")
		}
		activities = append(activities, activity)
	}
	enrolled, err := s.enrolledActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(activities, enrolled...), nil
}

// Config returns the grid's week definition.
func (s *TimetableService) Config() TimetableConfig {
	return s.cfg
}

func (s *TimetableService) enrolledActivities(ctx context.Context, studentID string) ([]models.Activity, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}
	details, err := s.enrollments.ListActiveDetailsByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	activities := make([]models.Activity, 0, len(details))
	for i := range details {
		ref, err := details[i].Ref()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid enrollment window")
		}
		activities = append(activities, ref.Activity)
	}
	return activities, nil
}

func (s *TimetableService) render(activities []models.Activity) *dto.TimetableResponse {
	grid := models.BuildTimetableGrid(activities, s.cfg.Days, s.cfg.Slots)

	resp := &dto.TimetableResponse{
		Days: grid.Days(),
		Rows: make([]dto.TimetableRow, 0, len(grid.Slots())),
	}
	for slotIdx, anchor := range grid.Slots() {
		row := dto.TimetableRow{Slot: anchor}
		for _, day := range grid.Days() {
			activity, ok := grid.Cell(day, slotIdx)
			if !ok {
				continue
			}
			row.Cells = append(row.Cells, dto.TimetableCell{
				Day:      day,
				Course:   activity.CourseID,
				Code:     activity.Code,
				Name:     activity.Name,
				Room:     activity.Room,
				Category: activity.Category,
				Start:    activity.Window.Start,
				End:      activity.Window.End,
			})
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp
}
