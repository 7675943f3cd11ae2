package route

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"schoolfeesku_backend/internals/constants"
	feeRoute "schoolfeesku_backend/internals/features/finance/fees/route"
	paymentRoute "schoolfeesku_backend/internals/features/finance/payments/route"
	authMiddleware "schoolfeesku_backend/internals/middlewares/auth"
)

// SetupRoutes mendaftarkan seluruh route aplikasi.
//
//	/api            → public (webhook gateway)
//	/api/a          → operator keuangan (director, office)
//	/api/u          → semua role login (viewer)
//	/health,/metrics → ops
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public: webhook tidak bisa bawa JWT, auth middleware skip path ini.
	paymentRoute.PaymentPublicRoutes(api, db)

	admin := api.Group("/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Akses khusus operator keuangan", constants.FeeOperatorRoles...),
	)
	feeRoute.FeeAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)

	user := api.Group("/u",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("Harus login", constants.FeeViewerRoles...),
	)
	feeRoute.FeeUserRoutes(user, db)
	paymentRoute.PaymentUserRoutes(user, db)
}
