package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-enroll-api/internal/models"
	"github.com/noah-isme/campus-enroll-api/internal/service"
	appErrors "github.com/noah-isme/campus-enroll-api/pkg/errors"
	"github.com/noah-isme/campus-enroll-api/pkg/response"
)

// ScheduleHandler exposes weekly timetable endpoints.
type ScheduleHandler struct {
	timetable *service.TimetableService
	exports   *service.ExportService
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(timetable *service.TimetableService, exports *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{timetable: timetable, exports: exports}
}

// Student godoc
// @Summary Weekly grid of the caller's active enrollments
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/schedule [get]
func (h *ScheduleHandler) Student(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	grid, err := h.timetable.StudentGrid(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Staff godoc
// @Summary Weekly grid combining taught and enrolled courses
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/schedule/staff [get]
func (h *ScheduleHandler) Staff(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	grid, err := h.timetable.StaffGrid(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Export godoc
// @Summary Download the weekly grid as CSV or PDF
// @Tags Schedule
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /me/schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	includeTeaching := claims.Role == models.RoleFaculty

	result, err := h.exports.Schedule(c.Request.Context(), claims.UserID, includeTeaching, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
