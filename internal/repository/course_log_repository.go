package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-enroll-api/internal/models"
)

// CourseLogRepository handles the course activity trail. Entries tied to the
// drop transition are written inside EnrollmentRepository.DropWithLog; this
// repository covers standalone entries and reads.
type CourseLogRepository struct {
	db *sqlx.DB
}

// NewCourseLogRepository constructs the repository.
func NewCourseLogRepository(db *sqlx.DB) *CourseLogRepository {
	return &CourseLogRepository{db: db}
}

// Create persists a standalone log entry.
func (r *CourseLogRepository) Create(ctx context.Context, entry *models.CourseLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO course_logs (id, course_id, action_type, description, created_by, metadata, created_at)
        VALUES (:id, :course_id, :action_type, :description, :created_by, :metadata, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create course log: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first.
func (r *CourseLogRepository) ListRecent(ctx context.Context, limit int) ([]models.CourseLogDetail, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := fmt.Sprintf(`SELECT l.id, l.course_id, l.action_type, l.description, l.created_by, l.metadata, l.created_at,
        c.code AS course_code, c.name AS course_name
        FROM course_logs l
        JOIN courses c ON c.id = l.course_id
        ORDER BY l.created_at DESC LIMIT %d`, limit)
	var logs []models.CourseLogDetail
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("list course logs: %w", err)
	}
	return logs, nil
}
