package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodscary/firstrubyfriend/internal/usecase/automatch"
)

type AutoMatchHandler struct {
	autoMatchUseCase *automatch.AutoMatchUseCase
	defaultMinimum   int
}

func NewAutoMatchHandler(autoMatchUseCase *automatch.AutoMatchUseCase, defaultMinimum int) *AutoMatchHandler {
	return &AutoMatchHandler{
		autoMatchUseCase: autoMatchUseCase,
		defaultMinimum:   defaultMinimum,
	}
}

// AutoMatchRequest overrides the configured threshold for one run.
type AutoMatchRequest struct {
	MinimumScore *int `json:"minimum_score" binding:"omitempty,min=0,max=100"`
}

// Run handles POST /admin/auto-matches
// @Summary Run auto-match over all unmatched applicants
// @Tags auto-match
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AutoMatchRequest false "Threshold override"
// @Success 200 {object} automatch.Report
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/auto-matches [post]
func (h *AutoMatchHandler) Run(c *gin.Context) {
	var req AutoMatchRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		// an empty body keeps the configured threshold
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, "invalid request body")
			return
		}
	}

	minimum := h.defaultMinimum
	if req.MinimumScore != nil {
		minimum = *req.MinimumScore
	}

	report, err := h.autoMatchUseCase.AutoMatchAll(c.Request.Context(), minimum)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// LastReport handles GET /admin/auto-matches/last
// @Summary Report of the most recent auto-match run
// @Tags auto-match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} automatch.Report
// @Failure 404 {object} ErrorResponse
// @Router /admin/auto-matches/last [get]
func (h *AutoMatchHandler) LastReport(c *gin.Context) {
	report, err := h.autoMatchUseCase.LastReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
