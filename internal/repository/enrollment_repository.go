package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-enroll-api/internal/models"
)

// ErrEnrollmentNotActive is returned when a conditional status transition
// matches no row, either because the enrollment does not exist or because a
// concurrent caller already dropped it.
var ErrEnrollmentNotActive = errors.New("enrollment not active")

const enrollmentDetailColumns = `e.id, e.student_id, e.course_id, e.status, e.enrolled_at, e.dropped_at,
        p.full_name AS student_name, p.email AS student_email,
        c.code AS course_code, c.name AS course_name, c.credits AS course_credits, c.days AS course_days,
        c.start_time AS course_start, c.end_time AS course_end, c.room_number AS course_room`

const enrollmentDetailJoins = `FROM enrollments e
JOIN profiles p ON p.id = e.student_id
JOIN courses c ON c.id = e.course_id`

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns enrollment details filtered by the provided criteria.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error) {
	var conditions []string
	var args []interface{}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("e.course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)+1))
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
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s %s ORDER BY e.enrolled_at DESC, e.id LIMIT %d OFFSET %d`,
		enrollmentDetailColumns, enrollmentDetailJoins+clause, size, offset)

	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", enrollmentDetailJoins+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	return enrollments, total, nil
}

// FindByID returns an enrollment by its ID.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	const query = `SELECT id, student_id, course_id, status, enrolled_at, dropped_at FROM enrollments WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindDetailByID returns an enrollment with student and course context.
func (r *EnrollmentRepository) FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.id = $1`, enrollmentDetailColumns, enrollmentDetailJoins)
	var detail models.EnrollmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListActiveDetailsByInstructor returns the enrolled roster across every
// course taught by the instructor. Roster order (course code, student name,
// enrollment time) fixes the order of conflict reports.
func (r *EnrollmentRepository) ListActiveDetailsByInstructor(ctx context.Context, instructorID string) ([]models.EnrollmentDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE c.instructor_id = $1 AND e.status = $2
        ORDER BY c.code, p.full_name, e.enrolled_at, e.id`,
		enrollmentDetailColumns, enrollmentDetailJoins)
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, instructorID, models.EnrollmentStatusEnrolled); err != nil {
		return nil, fmt.Errorf("list instructor roster: %w", err)
	}
	return enrollments, nil
}

// ListActiveDetails returns every active enrollment in the system in natural
// enrollment order. One upfront fetch replaces per-enrollment peer queries;
// the ordering makes peer lists deterministic.
func (r *EnrollmentRepository) ListActiveDetails(ctx context.Context) ([]models.EnrollmentDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.status = $1 ORDER BY e.enrolled_at, e.id`,
		enrollmentDetailColumns, enrollmentDetailJoins)
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, models.EnrollmentStatusEnrolled); err != nil {
		return nil, fmt.Errorf("list active enrollments: %w", err)
	}
	return enrollments, nil
}

// ListActiveDetailsByStudent returns one student's active enrollments in
// enrollment order, with course context for grid building.
func (r *EnrollmentRepository) ListActiveDetailsByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE e.student_id = $1 AND e.status = $2
        ORDER BY e.enrolled_at, e.id`,
		enrollmentDetailColumns, enrollmentDetailJoins)
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID, models.EnrollmentStatusEnrolled); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return enrollments, nil
}

// ExistsActive checks whether the student already holds an active enrollment
// in the course.
func (r *EnrollmentRepository) ExistsActive(ctx context.Context, studentID, courseID string) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2 AND status = $3 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, courseID, models.EnrollmentStatusEnrolled); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check active enrollment: %w", err)
	}
	return true, nil
}

// Create persists a new enrollment record.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentStatusEnrolled
	}
	const query = `INSERT INTO enrollments (id, student_id, course_id, status, enrolled_at, dropped_at)
        VALUES (:id, :student_id, :course_id, :status, :enrolled_at, :dropped_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// DropWithLog transitions the enrollment to dropped and appends the course
// log entry in a single transaction. The UPDATE is conditional on the
// current status, so a concurrent drop makes this call fail with
// ErrEnrollmentNotActive and no log row is written; the two effects are
// visible together or not at all.
func (r *EnrollmentRepository) DropWithLog(ctx context.Context, id string, entry *models.CourseLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin drop tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	droppedAt := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE enrollments SET status = $2, dropped_at = $3 WHERE id = $1 AND status = $4`,
		id, models.EnrollmentStatusDropped, droppedAt, models.EnrollmentStatusEnrolled)
	if err != nil {
		return fmt.Errorf("drop enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("drop enrollment result: %w", err)
	}
	if affected == 0 {
		return ErrEnrollmentNotActive
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = droppedAt
	}
	if _, err := tx.NamedExecContext(ctx,
		`INSERT INTO course_logs (id, course_id, action_type, description, created_by, metadata, created_at)
         VALUES (:id, :course_id, :action_type, :description, :created_by, :metadata, :created_at)`,
		entry); err != nil {
		return fmt.Errorf("append course log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit drop tx: %w", err)
	}
	return nil
}
