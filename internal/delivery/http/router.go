package http

import (
	"github.com/gin-gonic/gin"
	"github.com/goodscary/firstrubyfriend/internal/delivery/http/handler"
	"github.com/goodscary/firstrubyfriend/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	matchingHandler   *handler.MatchingHandler
	autoMatchHandler  *handler.AutoMatchHandler
	mentorshipHandler *handler.MentorshipHandler
	healthHandler     *handler.HealthHandler
	authMiddleware    *middleware.AuthMiddleware
	logger            *zap.Logger
}

func NewRouter(
	matchingHandler *handler.MatchingHandler,
	autoMatchHandler *handler.AutoMatchHandler,
	mentorshipHandler *handler.MentorshipHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *zap.Logger,
) *Router {
	return &Router{
		matchingHandler:   matchingHandler,
		autoMatchHandler:  autoMatchHandler,
		mentorshipHandler: mentorshipHandler,
		healthHandler:     healthHandler,
		authMiddleware:    authMiddleware,
		logger:            logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	router.GET("/health", r.healthHandler.Health)
	router.HEAD("/health", r.healthHandler.Health)
	router.GET("/ready", r.healthHandler.Ready)

	// API v1
	v1 := router.Group("/api/v1")
	{
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.RequireAdmin())
		{
			applicants := admin.Group("/applicants")
			{
				applicants.GET("/unmatched", r.matchingHandler.UnmatchedApplicants)
				applicants.GET("/:id/matches", r.matchingHandler.FindMatches)
			}

			autoMatches := admin.Group("/auto-matches")
			{
				autoMatches.POST("", r.autoMatchHandler.Run)
				autoMatches.GET("/last", r.autoMatchHandler.LastReport)
			}

			mentorships := admin.Group("/mentorships")
			{
				mentorships.GET("", r.mentorshipHandler.List)
				mentorships.POST("", r.mentorshipHandler.Create)
				mentorships.POST("/approve-all", r.mentorshipHandler.ApproveAll)
				mentorships.POST("/:id/approve", r.mentorshipHandler.Approve)
				mentorships.POST("/:id/reject", r.mentorshipHandler.Reject)
				mentorships.POST("/:id/end", r.mentorshipHandler.End)
				mentorships.GET("/:id/summary", r.mentorshipHandler.Summary)
			}
		}
	}

	return router
}
