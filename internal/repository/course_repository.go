package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-enroll-api/internal/models"
)

const courseColumns = `id, code, name, description, credits, lecture_hours, tutorial_hours,
        practical_hours, self_study_hours, days, start_time, end_time, semester,
        max_students, room_number, instructor_id, status, created_at`

// CourseRepository handles persistence of courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses filtered by the provided criteria, ordered by code.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(code ILIKE $%d OR name ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.InstructorID != "" {
		conditions = append(conditions, fmt.Sprintf("instructor_id = $%d", len(args)+1))
		args = append(args, filter.InstructorID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM courses%s ORDER BY code LIMIT %d OFFSET %d`,
		courseColumns, clause, size, offset)

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM courses%s", clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// FindByID returns a course by its ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM courses WHERE id = $1`, courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListByInstructor returns an instructor's courses together with their
// active enrollment counts, ordered by code.
func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.CourseWithCount, error) {
	query := fmt.Sprintf(`SELECT c.*, COALESCE(e.cnt, 0) AS enrolled_count
        FROM (SELECT %s FROM courses WHERE instructor_id = $1) c
        LEFT JOIN (
            SELECT course_id, COUNT(*) AS cnt FROM enrollments WHERE status = $2 GROUP BY course_id
        ) e ON e.course_id = c.id
        ORDER BY c.code`, courseColumns)
	var courses []models.CourseWithCount
	if err := r.db.SelectContext(ctx, &courses, query, instructorID, models.EnrollmentStatusEnrolled); err != nil {
		return nil, fmt.Errorf("list instructor courses: %w", err)
	}
	return courses, nil
}

// CountActive returns the number of active courses.
func (r *CourseRepository) CountActive(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM courses WHERE status = $1`, models.CourseStatusActive); err != nil {
		return 0, fmt.Errorf("count active courses: %w", err)
	}
	return total, nil
}

// Create persists a new course record.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	if course.Status == "" {
		course.Status = models.CourseStatusActive
	}
	const query = `INSERT INTO courses (id, code, name, description, credits, lecture_hours, tutorial_hours,
        practical_hours, self_study_hours, days, start_time, end_time, semester, max_students,
        room_number, instructor_id, status, created_at)
        VALUES (:id, :code, :name, :description, :credits, :lecture_hours, :tutorial_hours,
        :practical_hours, :self_study_hours, :days, :start_time, :end_time, :semester, :max_students,
        :room_number, :instructor_id, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}
