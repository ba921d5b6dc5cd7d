package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodscary/firstrubyfriend/internal/usecase/matching"
	"github.com/google/uuid"
)

type MatchingHandler struct {
	matchingUseCase *matching.MatchingUseCase
}

func NewMatchingHandler(matchingUseCase *matching.MatchingUseCase) *MatchingHandler {
	return &MatchingHandler{
		matchingUseCase: matchingUseCase,
	}
}

// UnmatchedApplicants handles GET /admin/applicants/unmatched
// @Summary List unmatched applicants
// @Tags matching
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.ApplicantProfile
// @Failure 500 {object} ErrorResponse
// @Router /admin/applicants/unmatched [get]
func (h *MatchingHandler) UnmatchedApplicants(c *gin.Context) {
	applicants, err := h.matchingUseCase.UnmatchedApplicants(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applicants": applicants,
		"count":      len(applicants),
	})
}

// FindMatches handles GET /admin/applicants/:id/matches
// @Summary Ranked mentor candidates for an applicant
// @Tags matching
// @Security BearerAuth
// @Produce json
// @Param id path string true "Applicant ID"
// @Success 200 {array} matching.Candidate
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/applicants/{id}/matches [get]
func (h *MatchingHandler) FindMatches(c *gin.Context) {
	applicantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid applicant id")
		return
	}

	candidates, err := h.matchingUseCase.FindMatches(c.Request.Context(), applicantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applicant_id": applicantID,
		"candidates":   candidates,
	})
}
