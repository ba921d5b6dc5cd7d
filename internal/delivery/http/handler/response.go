package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodscary/firstrubyfriend/internal/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrApplicantNotFound, http.StatusNotFound},
	{domain.ErrMentorNotFound, http.StatusNotFound},
	{domain.ErrMentorshipNotFound, http.StatusNotFound},
	{domain.ErrAutoMatchReportNotFound, http.StatusNotFound},
	{domain.ErrSelfMentorship, http.StatusBadRequest},
	{domain.ErrInvalidInitialStanding, http.StatusBadRequest},
	{domain.ErrInvalidStanding, http.StatusBadRequest},
	{domain.ErrInvalidMinimumScore, http.StatusBadRequest},
	{domain.ErrMentorUnavailable, http.StatusConflict},
	{domain.ErrApplicantAlreadyMatched, http.StatusConflict},
	{domain.ErrIllegalTransition, http.StatusConflict},
	{domain.ErrStaleStanding, http.StatusConflict},
	{domain.ErrAutoMatchInProgress, http.StatusConflict},
}

// respondError maps domain errors to their status. Anything else is a 500
// whose detail only reaches the request log.
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, ErrorResponse{Error: e.err.Error()})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
