package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"schoolfeesku_backend/internals/middlewares/logger"
)

// SetupMiddlewares mendaftarkan middleware global berurutan.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
