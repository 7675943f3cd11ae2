package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feemodel "schoolfeesku_backend/internals/features/finance/fees/model"
	model "schoolfeesku_backend/internals/features/finance/payments/model"
)

// NextReceiptNumber menghasilkan nomor kuitansi incremental per school year.
func NextReceiptNumber(ctx context.Context, db *gorm.DB, schoolYearID uuid.UUID) (int64, error) {
	var next int64
	if err := db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(payment_receipt_no), 0) + 1
		FROM payments
		WHERE payment_school_year_id = ?
	`, schoolYearID).Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// GenOrderID membuat order_id dengan prefix tertentu (dipakai di gateway).
func GenOrderID(prefix string) string {
	now := time.Now().In(time.Local).Format("20060102-150405")
	u := uuid.New().String()
	if len(u) > 8 {
		u = u[:8]
	}
	return prefix + "-" + now + "-" + strings.ToUpper(u)
}

// ApplyFeeSideEffects menaikkan paid amount tiap student_fee yang teralokasi
// lalu menghitung ulang statusnya. Dipanggil di dalam transaksi yang sama
// dengan insert payment agar tidak ada update parsial.
func ApplyFeeSideEffects(ctx context.Context, tx *gorm.DB, studentYearID uuid.UUID, items []model.PaymentItemModel) error {
	for _, it := range items {
		if !it.PaymentItemAmount.IsPositive() {
			continue
		}

		q := tx.WithContext(ctx).
			Where("student_fee_student_year_id = ? AND student_fee_month = ? AND student_fee_deleted_at IS NULL",
				studentYearID, it.PaymentItemMonth)
		switch it.PaymentItemFeeReferenceKind {
		case model.FeeReferenceKindStructure:
			q = q.Where("student_fee_structure_id = ?", it.PaymentItemFeeReferenceID)
		default:
			q = q.Where("student_fee_id = ?", it.PaymentItemFeeReferenceID)
		}

		var fee feemodel.StudentFeeModel
		if err := q.Take(&fee).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusUnprocessableEntity,
					"fee line not found: "+it.PaymentItemFeeType+" ("+it.PaymentItemMonth+")")
			}
			return err
		}

		fee.ApplyPayment(it.PaymentItemAmount)
		if err := tx.WithContext(ctx).Save(&fee).Error; err != nil {
			return err
		}
	}
	return nil
}

/* =========================================================
   Gateway status mapping
========================================================= */

// MappedFields menyimpan field waktu yang perlu di-set saat map status gateway.
type MappedFields struct {
	PaidAt     *time.Time
	CanceledAt *time.Time
	FailedAt   *time.Time
}

// MapGatewayStatus mengonversi status transaksi gateway menjadi status internal.
func MapGatewayStatus(current, transactionStatus, fraudStatus string, now time.Time) (string, MappedFields) {
	ts := strings.ToLower(transactionStatus)
	fraud := strings.ToLower(fraudStatus)

	switch ts {
	case "capture":
		if fraud == "accept" {
			return model.PaymentStatusPaid, MappedFields{PaidAt: &now}
		}
		if fraud == "challenge" {
			return model.PaymentStatusAwaitingCallback, MappedFields{}
		}
		return model.PaymentStatusFailed, MappedFields{FailedAt: &now}

	case "settlement":
		return model.PaymentStatusPaid, MappedFields{PaidAt: &now}

	case "pending":
		return model.PaymentStatusPending, MappedFields{}

	case "deny", "failure":
		return model.PaymentStatusFailed, MappedFields{FailedAt: &now}

	case "cancel":
		return model.PaymentStatusCanceled, MappedFields{CanceledAt: &now}

	case "expire":
		return model.PaymentStatusExpired, MappedFields{}

	case "refund", "partial_refund":
		return model.PaymentStatusRefunded, MappedFields{}
	}

	return current, MappedFields{}
}
