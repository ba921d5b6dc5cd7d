package container

import (
	"context"
	"fmt"

	"github.com/goodscary/firstrubyfriend/internal/config"
	"github.com/goodscary/firstrubyfriend/internal/delivery/http"
	"github.com/goodscary/firstrubyfriend/internal/delivery/http/handler"
	"github.com/goodscary/firstrubyfriend/internal/delivery/http/middleware"
	"github.com/goodscary/firstrubyfriend/internal/infrastructure/cache"
	"github.com/goodscary/firstrubyfriend/internal/infrastructure/database"
	"github.com/goodscary/firstrubyfriend/internal/infrastructure/gemini"
	"github.com/goodscary/firstrubyfriend/internal/infrastructure/server"
	"github.com/goodscary/firstrubyfriend/internal/repository/postgres"
	"github.com/goodscary/firstrubyfriend/internal/usecase/automatch"
	"github.com/goodscary/firstrubyfriend/internal/usecase/matching"
	"github.com/goodscary/firstrubyfriend/internal/usecase/mentorship"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient

	Matching   *matching.MatchingUseCase
	AutoMatch  *automatch.AutoMatchUseCase
	Mentorship *mentorship.MentorshipUseCase
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	// Initialize database
	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	if err := database.Migrate(db); err != nil {
		_ = c.Close()
		return nil, err
	}

	checkers := []handler.Checker{database.NewPostgresChecker(db)}

	// Redis is optional: without it runs are not locked across instances
	var (
		reports cache.Cache
		locker  cache.Locker
	)
	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = redisClient
		redisCache := cache.NewRedisCache(redisClient)
		reports, locker = redisCache, redisCache
		checkers = append(checkers, database.NewRedisChecker(redisClient))
	} else {
		logger.Warn("redis not configured, auto-match runs are not locked across instances")
	}

	// Initialize Gemini Client
	var summarizer mentorship.Summarizer
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, logger)
		if err != nil {
			// Don't fail, summaries fall back to the template
			logger.Warn("failed to initialize gemini client", zap.Error(err))
		} else {
			c.Gemini = geminiClient
			summarizer = geminiClient
		}
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	mentorshipRepo := postgres.NewMentorshipRepository(db)

	// Initialize use cases
	c.Matching = matching.NewMatchingUseCase(profileRepo, mentorshipRepo, logger.Named("matching"))
	c.AutoMatch = automatch.NewAutoMatchUseCase(
		c.Matching,
		mentorshipRepo,
		reports,
		locker,
		automatch.Config{
			Workers:           cfg.Matching.Workers,
			MaxReportedErrors: cfg.Matching.MaxReportedErrors,
			LockTTL:           cfg.Matching.LockTTL,
		},
		logger.Named("automatch"),
	)
	c.Mentorship = mentorship.NewMentorshipUseCase(
		mentorshipRepo,
		profileRepo,
		summarizer,
		logger.Named("mentorship"),
	)

	// Initialize router
	router := http.NewRouter(
		handler.NewMatchingHandler(c.Matching),
		handler.NewAutoMatchHandler(c.AutoMatch, cfg.Matching.MinimumScore),
		handler.NewMentorshipHandler(c.Mentorship),
		handler.NewHealthHandler(checkers...),
		middleware.NewAuthMiddleware(cfg.JWT.AdminSecret, cfg.JWT.Issuer),
		logger.Named("http"),
	)

	// Initialize server
	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Warn("error closing gemini client", zap.Error(err))
		}
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
