package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-enroll-api/internal/models"
)

func newCourseLogRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseLogRepositoryCreateFillsDefaults(t *testing.T) {
	db, mock, cleanup := newCourseLogRepoMock(t)
	defer cleanup()

	repo := NewCourseLogRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO course_logs")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.CourseLog{
		CourseID:    "c1",
		ActionType:  models.LogActionEnrollment,
		Description: "Alice enrolled in CS101",
		CreatedBy:   "alice",
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	require.NotEmpty(t, entry.ID)
	require.False(t, entry.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseLogRepositoryListRecent(t *testing.T) {
	db, mock, cleanup := newCourseLogRepoMock(t)
	defer cleanup()

	repo := NewCourseLogRepository(db)
	columns := []string{"id", "course_id", "action_type", "description", "created_by", "metadata", "created_at", "course_code", "course_name"}
	rows := sqlmock.NewRows(columns).
		AddRow("l2", "c1", models.LogActionConflictResolution, "Schedule conflict resolved: Alice was dropped from CS101", "prof-1", []byte(`{"reason":"overlap"}`), time.Now(), "CS101", "Intro to Computing").
		AddRow("l1", "c1", models.LogActionEnrollment, "Alice enrolled in CS101", "alice", nil, time.Now().Add(-time.Hour), "CS101", "Intro to Computing")

	mock.ExpectQuery("SELECT l.id, l.course_id.+ORDER BY l.created_at DESC LIMIT 50").
		WillReturnRows(rows)

	logs, err := repo.ListRecent(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, models.LogActionConflictResolution, logs[0].ActionType)
	require.Equal(t, "CS101", logs[0].CourseCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseLogRepositoryListRecentClampsLimit(t *testing.T) {
	db, mock, cleanup := newCourseLogRepoMock(t)
	defer cleanup()

	repo := NewCourseLogRepository(db)
	mock.ExpectQuery("ORDER BY l.created_at DESC LIMIT 100").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "action_type", "description", "created_by", "metadata", "created_at", "course_code", "course_name"}))

	logs, err := repo.ListRecent(context.Background(), -5)
	require.NoError(t, err)
	require.Empty(t, logs)
	require.NoError(t, mock.ExpectationsWereMet())
}
