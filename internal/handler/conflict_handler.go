package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-enroll-api/internal/dto"
	"github.com/noah-isme/campus-enroll-api/internal/service"
	appErrors "github.com/noah-isme/campus-enroll-api/pkg/errors"
	"github.com/noah-isme/campus-enroll-api/pkg/response"
)

// ConflictHandler exposes schedule conflict detection and resolution.
type ConflictHandler struct {
	conflicts *service.ConflictService
}

// NewConflictHandler constructs ConflictHandler.
func NewConflictHandler(conflicts *service.ConflictService) *ConflictHandler {
	return &ConflictHandler{conflicts: conflicts}
}

// List godoc
// @Summary List schedule conflicts on the instructor's roster
// @Tags Conflicts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /conflicts [get]
func (h *ConflictHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	resp, err := h.conflicts.ListForInstructor(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Resolve godoc
// @Summary Resolve a conflict by dropping the enrollment
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param enrollmentId path string true "Enrollment ID"
// @Param payload body dto.ResolveConflictRequest true "Resolution payload"
// @Success 200 {object} response.Envelope
// @Router /conflicts/{enrollmentId}/resolve [post]
func (h *ConflictHandler) Resolve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resolved, err := h.conflicts.Resolve(c.Request.Context(), c.Param("enrollmentId"), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resolved, nil)
}
