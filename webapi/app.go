// Package webapi assembles the fiber application over the ledger
// services.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sociomart/backend/infra/initializer"
	"github.com/sociomart/backend/webapi/common"
	"github.com/sociomart/backend/webapi/market"
	"github.com/sociomart/backend/webapi/social"
)

// NewApp builds the fiber app: error handler, rate limiting, panic
// recovery and the social and market route groups.
func NewApp(deps *initializer.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        deps.Cfg.RateLimit.MaxRequests,
		Expiration: deps.Cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	social.Routes(app, deps.Social, deps.Cfg)
	market.Routes(app, deps.Market, deps.Cfg)

	return app
}
