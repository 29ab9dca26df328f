package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-enroll-api/internal/service"
	"github.com/noah-isme/campus-enroll-api/pkg/response"
)

// CourseLogHandler exposes the course activity feed.
type CourseLogHandler struct {
	logs *service.CourseLogService
}

// NewCourseLogHandler constructs CourseLogHandler.
func NewCourseLogHandler(logs *service.CourseLogService) *CourseLogHandler {
	return &CourseLogHandler{logs: logs}
}

// Recent godoc
// @Summary Recent course activity, newest first
// @Tags CourseLogs
// @Produce json
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {object} response.Envelope
// @Router /course-logs [get]
func (h *CourseLogHandler) Recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	entries, err := h.logs.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
