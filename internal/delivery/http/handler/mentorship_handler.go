package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodscary/firstrubyfriend/internal/domain"
	"github.com/goodscary/firstrubyfriend/internal/usecase/mentorship"
	"github.com/google/uuid"
)

type MentorshipHandler struct {
	mentorshipUseCase *mentorship.MentorshipUseCase
}

func NewMentorshipHandler(mentorshipUseCase *mentorship.MentorshipUseCase) *MentorshipHandler {
	return &MentorshipHandler{
		mentorshipUseCase: mentorshipUseCase,
	}
}

// List handles GET /admin/mentorships?standing=pending
// @Summary List mentorships by standing, newest first
// @Tags mentorships
// @Security BearerAuth
// @Produce json
// @Param standing query string false "pending, active, ended or rejected" default(pending)
// @Success 200 {array} domain.Mentorship
// @Failure 400 {object} ErrorResponse
// @Router /admin/mentorships [get]
func (h *MentorshipHandler) List(c *gin.Context) {
	standing, err := domain.ParseStanding(c.DefaultQuery("standing", string(domain.StandingPending)))
	if err != nil {
		respondError(c, err)
		return
	}

	mentorships, err := h.mentorshipUseCase.ListByStanding(c.Request.Context(), standing)
	if err != nil {
		respondError(c, err)
		return
	}
	if mentorships == nil {
		mentorships = []*domain.Mentorship{}
	}

	c.JSON(http.StatusOK, gin.H{
		"mentorships": mentorships,
		"count":       len(mentorships),
	})
}

// Create handles POST /admin/mentorships
// @Summary Pair an applicant with a mentor as an active mentorship
// @Tags mentorships
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body mentorship.ManualMatchRequest true "Pairing"
// @Success 201 {object} domain.Mentorship
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/mentorships [post]
func (h *MentorshipHandler) Create(c *gin.Context) {
	var req mentorship.ManualMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	m, err := h.mentorshipUseCase.ManualMatch(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ApproveAll handles POST /admin/mentorships/approve-all
// @Summary Approve every pending mentorship
// @Tags mentorships
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Router /admin/mentorships/approve-all [post]
func (h *MentorshipHandler) ApproveAll(c *gin.Context) {
	count, err := h.mentorshipUseCase.ApproveAllPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": count})
}

// Approve handles POST /admin/mentorships/:id/approve
func (h *MentorshipHandler) Approve(c *gin.Context) {
	h.transition(c, h.mentorshipUseCase.Approve)
}

// Reject handles POST /admin/mentorships/:id/reject
func (h *MentorshipHandler) Reject(c *gin.Context) {
	h.transition(c, h.mentorshipUseCase.Reject)
}

// End handles POST /admin/mentorships/:id/end
func (h *MentorshipHandler) End(c *gin.Context) {
	h.transition(c, h.mentorshipUseCase.End)
}

func (h *MentorshipHandler) transition(c *gin.Context, act func(context.Context, uuid.UUID) (*domain.Mentorship, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid mentorship id")
		return
	}

	m, err := act(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// Summary handles GET /admin/mentorships/:id/summary
// @Summary Reviewer summary of a mentorship
// @Tags mentorships
// @Security BearerAuth
// @Produce json
// @Param id path string true "Mentorship ID"
// @Success 200 {object} mentorship.Summary
// @Failure 404 {object} ErrorResponse
// @Router /admin/mentorships/{id}/summary [get]
func (h *MentorshipHandler) Summary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid mentorship id")
		return
	}

	summary, err := h.mentorshipUseCase.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
