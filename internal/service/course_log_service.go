package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-enroll-api/internal/models"
	appErrors "github.com/noah-isme/campus-enroll-api/pkg/errors"
)

type courseLogReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.CourseLogDetail, error)
}

// CourseLogService exposes the course activity feed.
type CourseLogService struct {
	repo   courseLogReader
	logger *zap.Logger
}

// NewCourseLogService constructs CourseLogService.
func NewCourseLogService(repo courseLogReader, logger *zap.Logger) *CourseLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseLogService{repo: repo, logger: logger}
}

// Recent returns the newest log entries, most recent first.
func (s *CourseLogService) Recent(ctx context.Context, limit int) ([]models.CourseLogDetail, error) {
	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course logs")
	}
	return entries, nil
}
