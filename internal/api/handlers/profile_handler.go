package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewxp/backend/internal/models"
	"github.com/interviewxp/backend/internal/services"
	"github.com/interviewxp/backend/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := h.svc.Ensure(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type UpdatePreferencesRequest struct {
	InterviewStyle string `json:"interview_style" binding:"required"`
	Difficulty     string `json:"difficulty" binding:"required"`
	Persona        string `json:"persona" binding:"required"`
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.UpdatePreferences", "invalid request body", err))
		return
	}

	style := models.InterviewStyle(req.InterviewStyle)
	switch style {
	case models.StyleTechnical, models.StyleBehavioral, models.StyleMixed:
	default:
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.UpdatePreferences", "interview_style must be technical, behavioral or mixed", nil))
		return
	}

	prefs := models.Preferences{
		InterviewStyle: style,
		Difficulty:     req.Difficulty,
		Persona:        req.Persona,
	}
	if err := h.svc.SetPreferences(c.Request.Context(), userID, prefs); err != nil {
		writeError(c, err)
		return
	}

	profile, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *ProfileHandler) Clear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Clear(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
