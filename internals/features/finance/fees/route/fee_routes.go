package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeController "schoolfeesku_backend/internals/features/finance/fees/controller"
)

// FeeAdminRoutes: kelola fee structure (operator only, guard di level group).
func FeeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	structureCtrl := feeController.NewFeeStructureController(db)

	structures := admin.Group("/fee-structures")
	structures.Get("/", structureCtrl.List)
	structures.Post("/", structureCtrl.Create)
	structures.Patch("/:id", structureCtrl.Update)
	structures.Delete("/:id", structureCtrl.Delete)
}

// FeeUserRoutes: preview tagihan + simulasi alokasi (semua role login).
func FeeUserRoutes(user fiber.Router, db *gorm.DB) {
	previewCtrl := feeController.NewFeePreviewController(db)

	fees := user.Group("/fees")
	fees.Get("/preview/student/:studentYearId", previewCtrl.GetLedgerByStudent)
	fees.Get("/preview/class/:classId", previewCtrl.GetPreviewByClass)
	fees.Post("/allocate", previewCtrl.AllocatePreview)
}
