package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-enroll-api/internal/middleware"
	"github.com/noah-isme/campus-enroll-api/internal/models"
	"github.com/noah-isme/campus-enroll-api/internal/service"
)

type fakeConflictRepo struct {
	roster  []models.EnrollmentDetail
	active  []models.EnrollmentDetail
	dropped []string
}

func (f *fakeConflictRepo) ListActiveDetailsByInstructor(ctx context.Context, instructorID string) ([]models.EnrollmentDetail, error) {
	return f.roster, nil
}

func (f *fakeConflictRepo) ListActiveDetails(ctx context.Context) ([]models.EnrollmentDetail, error) {
	return f.active, nil
}

func (f *fakeConflictRepo) FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error) {
	for i := range f.active {
		if f.active[i].ID == id {
			return &f.active[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeConflictRepo) DropWithLog(ctx context.Context, id string, entry *models.CourseLog) error {
	for i := range f.active {
		if f.active[i].ID == id {
			f.active[i].Status = models.EnrollmentStatusDropped
		}
	}
	f.dropped = append(f.dropped, id)
	return nil
}

func conflictDetail(id, studentID, code string, start, end string) models.EnrollmentDetail {
	startT, _ := models.ParseTimeOfDay(start)
	endT, _ := models.ParseTimeOfDay(end)
	return models.EnrollmentDetail{
		Enrollment: models.Enrollment{
			ID:        id,
			StudentID: studentID,
			CourseID:  "course-" + code,
			Status:    models.EnrollmentStatusEnrolled,
		},
		StudentName: "Student " + studentID,
		CourseCode:  code,
		CourseDays:  pq.StringArray{"Monday"},
		CourseStart: startT,
		CourseEnd:   endT,
	}
}

func facultyContext(rec *httptest.ResponseRecorder, req *http.Request) (*gin.Context, *models.JWTClaims) {
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	claims := &models.JWTClaims{UserID: "prof-1", Role: models.RoleFaculty}
	c.Set(middleware.ContextUserKey, claims)
	return c, claims
}

func TestConflictHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeConflictRepo{
		roster: []models.EnrollmentDetail{conflictDetail("e1", "alice", "CS101", "09:00", "11:00")},
	}
	repo.active = append(repo.roster, conflictDetail("e2", "alice", "MA201", "10:00", "12:00"))

	handler := NewConflictHandler(service.NewConflictService(repo, nil, nil, nil, nil))

	rec := httptest.NewRecorder()
	c, _ := facultyContext(rec, httptest.NewRequest(http.MethodGet, "/conflicts", nil))
	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			Reports []struct {
				EnrollmentID string `json:"enrollment_id"`
			} `json:"reports"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Reports, 1)
	assert.Equal(t, "e1", envelope.Data.Reports[0].EnrollmentID)
}

func TestConflictHandlerListUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewConflictHandler(service.NewConflictService(&fakeConflictRepo{}, nil, nil, nil, nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/conflicts", nil)
	handler.List(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestConflictHandlerResolve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeConflictRepo{active: []models.EnrollmentDetail{conflictDetail("e1", "alice", "CS101", "09:00", "11:00")}}
	handler := NewConflictHandler(service.NewConflictService(repo, nil, nil, nil, nil))

	body := strings.NewReader(`{"reason":"overlaps MA201"}`)
	req := httptest.NewRequest(http.MethodPost, "/conflicts/e1/resolve", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	c, _ := facultyContext(rec, req)
	c.Params = gin.Params{{Key: "enrollmentId", Value: "e1"}}
	handler.Resolve(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"e1"}, repo.dropped)
}

func TestConflictHandlerResolveMissingReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeConflictRepo{active: []models.EnrollmentDetail{conflictDetail("e1", "alice", "CS101", "09:00", "11:00")}}
	handler := NewConflictHandler(service.NewConflictService(repo, nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/conflicts/e1/resolve", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	c, _ := facultyContext(rec, req)
	c.Params = gin.Params{{Key: "enrollmentId", Value: "e1"}}
	handler.Resolve(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.dropped)
}

func TestConflictHandlerResolveUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewConflictHandler(service.NewConflictService(&fakeConflictRepo{}, nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/conflicts/missing/resolve", strings.NewReader(`{"reason":"r"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	c, _ := facultyContext(rec, req)
	c.Params = gin.Params{{Key: "enrollmentId", Value: "missing"}}
	handler.Resolve(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
