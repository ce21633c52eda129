package routes

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/myville/backend/internal/config"
	"github.com/myville/backend/internal/handlers"
	"github.com/myville/backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Post    *handlers.PostHandler
	Alert   *handlers.AlertHandler
	Chat    *handlers.ChatHandler
	Geo     *handlers.GeoHandler
	Health  *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h *Handlers, mediaRoot string) {
	// Uploaded media is served as plain static content.
	app.Static(cfg.MediaBaseURL, mediaRoot)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// Protected auth routes; JWT applied per-route so the public group above
	// stays public.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), h.Auth.DeleteAccount)

	// Profile
	api.Get("/profile", middleware.JWTProtected(cfg), h.Profile.Get)
	api.Put("/profile", middleware.JWTProtected(cfg), h.Profile.Update)
	api.Post("/profile/avatar", middleware.JWTProtected(cfg), h.Profile.UploadAvatar)

	// Posts — feed reads are public but honor a token when present
	api.Get("/posts", middleware.OptionalJWT(cfg), h.Post.List)
	api.Get("/posts/:id", middleware.OptionalJWT(cfg), h.Post.Get)
	api.Get("/posts/:id/comments", h.Post.Comments)

	api.Post("/posts", middleware.JWTProtected(cfg), h.Post.Create)
	api.Post("/posts/media", middleware.JWTProtected(cfg), h.Post.UploadMedia)
	api.Post("/posts/:id/vote", middleware.JWTProtected(cfg), h.Post.ToggleVote)
	api.Post("/posts/:id/comments", middleware.JWTProtected(cfg), h.Post.AddComment)
	api.Delete("/posts/:id", middleware.JWTProtected(cfg), middleware.UserRequired(db), h.Post.Delete)

	// Status changes are for moderators and admins
	api.Patch("/posts/:id/status", middleware.JWTProtected(cfg), middleware.ModeratorRequired(db), h.Post.UpdateStatus)

	// Alerts — public banner feed
	api.Get("/alerts", h.Alert.List)

	// Geo + assistant
	api.Post("/geo/reverse", h.Geo.Reverse)
	api.Post("/geo/resolve", h.Geo.Resolve)
	api.Post("/chat", middleware.JWTProtected(cfg), h.Chat.Complete)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db))
	admin.Get("/alerts", h.Alert.ListAll)
	admin.Post("/alerts", h.Alert.Create)
	admin.Patch("/alerts/:id/toggle", h.Alert.Toggle)
	admin.Delete("/alerts/:id", h.Alert.Delete)
}
