package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolfeesku_backend/internals/configs"
	paymentController "schoolfeesku_backend/internals/features/finance/payments/controller"
	"schoolfeesku_backend/internals/middlewares"
)

// PaymentAdminRoutes: submit offline + initiate/confirm online (operator only).
func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db, configs.GatewayServerKey, configs.GatewayUseProd)

	payments := admin.Group("/payments", middlewares.PaymentRateLimiter())
	payments.Post("/", ctrl.SubmitOffline)
	payments.Post("/initiate", ctrl.InitiateOnline)
	payments.Post("/confirm", ctrl.ConfirmOnline)
}

// PaymentUserRoutes: lihat kuitansi.
func PaymentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db, configs.GatewayServerKey, configs.GatewayUseProd)

	user.Get("/payments/:id/receipt", ctrl.GetReceipt)
}

// PaymentPublicRoutes: webhook server-to-server, tanpa auth.
// Keaslian dijamin verifikasi signature di handler.
func PaymentPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db, configs.GatewayServerKey, configs.GatewayUseProd)

	public.Post("/payments/webhook", ctrl.Webhook)
}
