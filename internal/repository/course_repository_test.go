package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-enroll-api/internal/models"
)

func newCourseRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func courseColumnList() []string {
	return []string{
		"id", "code", "name", "description", "credits", "lecture_hours", "tutorial_hours",
		"practical_hours", "self_study_hours", "days", "start_time", "end_time", "semester",
		"max_students", "room_number", "instructor_id", "status", "created_at",
	}
}

func courseRow(rows *sqlmock.Rows, id, code string) *sqlmock.Rows {
	return rows.AddRow(
		id, code, "Course "+code, "", 3, 2, 1, 0, 3,
		[]byte("{Monday,Wednesday}"), "09:00:00", "10:30:00", "2026-1",
		40, "R101", "prof-1", "active", time.Now(),
	)
}

func TestCourseRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)
	rows := sqlmock.NewRows(courseColumnList())
	courseRow(rows, "c1", "CS101")

	mock.ExpectQuery("SELECT id, code, name.+FROM courses WHERE \\(code ILIKE \\$1 OR name ILIKE \\$1\\)").
		WithArgs("%CS%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE")).
		WithArgs("%CS%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{Search: "CS"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, courses, 1)
	require.Equal(t, "CS101", courses[0].Code)
	require.Equal(t, "09:00", courses[0].StartTime.String())
	require.Equal(t, []string{"Monday", "Wednesday"}, []string(courses[0].Days))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListByInstructorCounts(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)
	columns := append(courseColumnList(), "enrolled_count")
	rows := sqlmock.NewRows(columns).AddRow(
		"c1", "CS101", "Course CS101", "", 3, 2, 1, 0, 3,
		[]byte("{Monday}"), "09:00:00", "10:00:00", "2026-1",
		40, "R101", "prof-1", "active", time.Now(), 25,
	)

	mock.ExpectQuery("SELECT c\\.\\*, COALESCE\\(e\\.cnt, 0\\) AS enrolled_count").
		WithArgs("prof-1", models.EnrollmentStatusEnrolled).
		WillReturnRows(rows)

	courses, err := repo.ListByInstructor(context.Background(), "prof-1")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, 25, courses[0].EnrolledCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateFillsDefaults(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	start, _ := models.ParseTimeOfDay("09:00")
	end, _ := models.ParseTimeOfDay("10:30")
	course := &models.Course{
		Code:         "CS101",
		Name:         "Intro to Computing",
		Days:         pq.StringArray{"Monday", "Wednesday"},
		StartTime:    start,
		EndTime:      end,
		Semester:     "2026-1",
		MaxStudents:  40,
		InstructorID: "prof-1",
	}
	require.NoError(t, repo.Create(context.Background(), course))
	require.NotEmpty(t, course.ID)
	require.Equal(t, models.CourseStatusActive, course.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCountActive(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()

	repo := NewCourseRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE status = $1")).
		WithArgs(models.CourseStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.CountActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
