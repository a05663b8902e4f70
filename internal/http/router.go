package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/config"
	"github.com/kollect/backend/internal/http/handlers"
	"github.com/kollect/backend/internal/middleware"
)

// SetupRouter wires middleware and routes. rdb may be nil, which turns rate
// limiting off.
func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	users middleware.UserLookup,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	campaignHandler *handlers.CampaignHandler,
	bookmarkHandler *handlers.BookmarkHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.TrimSpace(cfg.CORSAllowOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (public, rate limited)
	limiter := middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute, log)
	api.Post("/auth/register", limiter, authHandler.Register)
	api.Post("/auth/login", limiter, authHandler.Login)
	api.Post("/auth/complete-signup", middleware.SignupTokenMiddleware(cfg, log), authHandler.CompleteSignup)

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/platforms", metaHandler.GetPlatforms)
	api.Get("/meta/campaign-statuses", metaHandler.GetCampaignStatuses)

	// WebSocket
	api.Use("/ws", handlers.WSUpgradeMiddleware())
	api.Get("/ws", websocket.New(wsHub.HandleWS))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log), middleware.LoadUser(users, log))

	// User
	protected.Get("/me", userHandler.GetMe)
	protected.Put("/me", userHandler.UpdateMe)
	protected.Delete("/me", userHandler.DeleteMe)

	// Campaigns
	protected.Get("/campaigns", campaignHandler.ListCampaigns)
	protected.Post("/campaigns", campaignHandler.CreateCampaign)
	protected.Get("/campaigns/mine", campaignHandler.MyCampaigns)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Put("/campaigns/:id", campaignHandler.UpdateCampaign)
	protected.Delete("/campaigns/:id", campaignHandler.DeleteCampaign)
	protected.Get("/campaigns/:id/activity", campaignHandler.GetActivity)

	// Bookmarks
	protected.Post("/campaigns/:id/bookmark", bookmarkHandler.Bookmark)
	protected.Get("/campaigns/:id/bookmark", bookmarkHandler.Status)
	protected.Post("/campaigns/:id/unbookmark", bookmarkHandler.Unbookmark)
	protected.Get("/bookmarks", bookmarkHandler.List)
}
