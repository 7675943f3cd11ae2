package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	feesdto "schoolfeesku_backend/internals/features/finance/fees/dto"
	feemodel "schoolfeesku_backend/internals/features/finance/fees/model"
	dto "schoolfeesku_backend/internals/features/finance/payments/dto"
	model "schoolfeesku_backend/internals/features/finance/payments/model"
	svc "schoolfeesku_backend/internals/features/finance/payments/service"
	helper "schoolfeesku_backend/internals/helpers"
	"schoolfeesku_backend/internals/observability"
)

/* =======================================================================
   Controller
======================================================================= */

type PaymentController struct {
	DB               *gorm.DB
	Validator        *validator.Validate
	GatewayServerKey string
}

func NewPaymentController(db *gorm.DB, gatewayServerKey string, useProd bool) *PaymentController {
	// init gateway client sekali saat bootstrap
	svc.InitGateway(gatewayServerKey, useProd)
	return &PaymentController{
		DB:               db,
		Validator:        validator.New(),
		GatewayServerKey: gatewayServerKey,
	}
}

/* =======================================================================
   Offline pathway (cash / cheque)
======================================================================= */

// POST /payments
func (h *PaymentController) SubmitOffline(c *fiber.Ctx) error {
	sc, err := helper.GetSessionContext(c)
	if err != nil {
		return err
	}

	var req dto.PaymentSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.PaymentMethod == model.PaymentMethodOnline {
		return fiber.NewError(fiber.StatusBadRequest, "Metode online lewat /payments/initiate")
	}
	if err := h.checkAmounts(req); err != nil {
		return err
	}

	// Guard double-submit: idempotency key unik; submit ulang dengan key
	// sama mengembalikan konfirmasi payment yang sudah ada.
	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		var existing model.PaymentModel
		if err := h.DB.WithContext(c.Context()).
			Preload("PaymentItems").
			First(&existing, "payment_idempotency_key = ? AND payment_deleted_at IS NULL", *req.IdempotencyKey).
			Error; err == nil {
			return helper.JsonOK(c, "OK", h.offlineConfirmation(&existing))
		}
	}

	now := time.Now()
	p := &model.PaymentModel{
		PaymentStudentYearID:  req.StudentYearID,
		PaymentSchoolYearID:   req.SchoolYearID,
		PaymentAmount:         req.PaidAmount.Decimal,
		PaymentCurrency:       "IDR",
		PaymentStatus:         model.PaymentStatusPaid,
		PaymentMethod:         req.PaymentMethod,
		PaymentReceivedBy:     req.ReceivedBy,
		PaymentRemarks:        req.Remarks,
		PaymentIdempotencyKey: req.IdempotencyKey,
		PaymentPaidAt:         &now,
	}
	if p.PaymentReceivedBy == nil {
		recv := sc.UserID.String()
		p.PaymentReceivedBy = &recv
	}

	err = h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := h.guardTotalDue(c, tx, req); err != nil {
			return err
		}

		receiptNo, err := svc.NextReceiptNumber(c.Context(), tx, req.SchoolYearID)
		if err != nil {
			return err
		}
		p.PaymentReceiptNo = receiptNo

		if err := tx.Create(p).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Pembayaran sedang diproses")
			}
			return err
		}

		items := req.ToItems(p.PaymentID)
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		p.PaymentItems = items

		return svc.ApplyFeeSideEffects(c.Context(), tx, req.StudentYearID, items)
	})
	if err != nil {
		observability.PaymentsTotal.WithLabelValues(req.PaymentMethod, "failed").Inc()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Pembayaran gagal, silakan coba lagi")
	}

	observability.PaymentsTotal.WithLabelValues(req.PaymentMethod, "paid").Inc()
	return helper.JsonCreated(c, "Pembayaran berhasil", h.offlineConfirmation(p))
}

/* =======================================================================
   Online pathway fase 1: initiate
======================================================================= */

// POST /payments/initiate
func (h *PaymentController) InitiateOnline(c *fiber.Ctx) error {
	if _, err := helper.GetSessionContext(c); err != nil {
		return err
	}

	var req dto.PaymentSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.PaymentMethod != model.PaymentMethodOnline {
		return fiber.NewError(fiber.StatusBadRequest, "payment_method harus online")
	}
	if err := h.checkAmounts(req); err != nil {
		return err
	}

	now := time.Now()
	orderID := svc.GenOrderID("FEE")
	p := &model.PaymentModel{
		PaymentStudentYearID:  req.StudentYearID,
		PaymentSchoolYearID:   req.SchoolYearID,
		PaymentAmount:         req.PaidAmount.Decimal,
		PaymentCurrency:       "IDR",
		PaymentStatus:         model.PaymentStatusPending,
		PaymentMethod:         model.PaymentMethodOnline,
		PaymentGatewayOrderID: &orderID,
		PaymentIdempotencyKey: req.IdempotencyKey,
		PaymentRemarks:        req.Remarks,
		PaymentRequestedAt:    &now,
	}

	err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := h.guardTotalDue(c, tx, req); err != nil {
			return err
		}

		receiptNo, err := svc.NextReceiptNumber(c.Context(), tx, req.SchoolYearID)
		if err != nil {
			return err
		}
		p.PaymentReceiptNo = receiptNo

		if err := tx.Create(p).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Pembayaran sedang diproses")
			}
			return err
		}

		items := req.ToItems(p.PaymentID)
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		observability.PaymentsTotal.WithLabelValues(model.PaymentMethodOnline, "failed").Inc()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Pembayaran gagal, silakan coba lagi")
	}

	token, checkoutURL, err := svc.CreateGatewayOrder(*p, svc.PayerInput{})
	if err != nil {
		observability.PaymentsTotal.WithLabelValues(model.PaymentMethodOnline, "gateway_error").Inc()
		return fiber.NewError(fiber.StatusBadGateway, "Gateway error: "+err.Error())
	}

	p.PaymentGatewayToken = &token
	p.PaymentCheckoutURL = &checkoutURL
	if err := h.DB.WithContext(c.Context()).Save(p).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal update payment setelah initiate")
	}

	observability.PaymentsTotal.WithLabelValues(model.PaymentMethodOnline, "initiated").Inc()
	return helper.JsonCreated(c, "Order gateway dibuat", dto.OnlineInitiateResponse{
		GatewayOrderID: orderID,
		Amount:         p.PaymentAmount,
		Currency:       p.PaymentCurrency,
		ReceiptNo:      p.PaymentReceiptNo,
		GatewayToken:   token,
		CheckoutURL:    checkoutURL,
	})
}

/* =======================================================================
   Online pathway fase 2: confirm
======================================================================= */

// POST /payments/confirm
func (h *PaymentController) ConfirmOnline(c *fiber.Ctx) error {
	if _, err := helper.GetSessionContext(c); err != nil {
		return err
	}

	var req dto.OnlineConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if !svc.VerifyConfirmSignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, h.GatewayServerKey) {
		return fiber.NewError(fiber.StatusUnauthorized, "Signature gateway tidak valid")
	}

	var p model.PaymentModel
	if err := h.DB.WithContext(c.Context()).
		Preload("PaymentItems").
		First(&p, "payment_gateway_order_id = ? AND payment_deleted_at IS NULL", req.GatewayOrderID).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Payment tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// Konfirmasi ulang (retry operator) atas payment yang sudah paid: jawab
	// konfirmasi yang sama tanpa apply side effect kedua kali.
	if p.IsPaid() {
		return helper.JsonOK(c, "OK", h.onlineConfirmation(&p))
	}
	if !p.IsOpen() {
		return fiber.NewError(fiber.StatusConflict, "Payment sudah tidak bisa dikonfirmasi")
	}

	now := time.Now()
	err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		p.PaymentStatus = model.PaymentStatusPaid
		p.PaymentPaidAt = &now
		p.PaymentGatewayPaymentID = &req.GatewayPaymentID
		p.PaymentGatewaySignature = &req.GatewaySignature
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		return svc.ApplyFeeSideEffects(c.Context(), tx, p.PaymentStudentYearID, p.PaymentItems)
	})
	if err != nil {
		observability.PaymentsTotal.WithLabelValues(model.PaymentMethodOnline, "failed").Inc()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Pembayaran gagal, silakan coba lagi")
	}

	_ = h.logGatewayEvent(c, &p, "confirm", req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, nil)

	observability.PaymentsTotal.WithLabelValues(model.PaymentMethodOnline, "paid").Inc()
	return helper.JsonOK(c, "Pembayaran berhasil", h.onlineConfirmation(&p))
}

/* =======================================================================
   Receipt
======================================================================= */

// GET /payments/:id/receipt
// Dua wire format direkonsiliasi jadi satu view model lewat adapter;
// setelah boundary itu tidak ada lagi branch ke payment method.
func (h *PaymentController) GetReceipt(c *fiber.Ctx) error {
	if _, err := helper.GetSessionContext(c); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var p model.PaymentModel
	if err := h.DB.WithContext(c.Context()).
		Preload("PaymentItems").
		First(&p, "payment_id = ? AND payment_deleted_at IS NULL", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Payment tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !p.IsPaid() {
		return fiber.NewError(fiber.StatusConflict, "Kuitansi hanya untuk payment yang sudah lunas")
	}

	var vm svc.ReceiptViewModel
	if p.IsOnline() {
		vm = svc.ReceiptFromOnline(h.onlineConfirmation(&p))
	} else {
		vm = svc.ReceiptFromOffline(h.offlineConfirmation(&p))
	}

	return helper.JsonOK(c, "OK", vm.ToResponse())
}

/* =======================================================================
   Helpers
======================================================================= */

// checkAmounts: alokasi harus menjumlah ke paid_amount (epsilon 0.01)
// dan paid_amount wajib positif.
func (h *PaymentController) checkAmounts(req dto.PaymentSubmissionRequest) error {
	if !req.PaidAmount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "paid_amount harus lebih dari 0")
	}
	diff := req.TotalAllocated().Sub(req.PaidAmount.Decimal).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.01)) {
		return fiber.NewError(fiber.StatusBadRequest, "Total alokasi tidak sama dengan paid_amount")
	}
	return nil
}

// guardTotalDue menolak submit yang nominalnya melebihi total due baris
// yang dialokasi (kelebihan tidak boleh hilang diam-diam).
func (h *PaymentController) guardTotalDue(c *fiber.Ctx, tx *gorm.DB, req dto.PaymentSubmissionRequest) error {
	totalDue := decimal.Zero
	for _, f := range req.Fees {
		q := tx.WithContext(c.Context()).
			Model(&feemodel.StudentFeeModel{}).
			Where("student_fee_student_year_id = ? AND student_fee_month = ? AND student_fee_deleted_at IS NULL",
				req.StudentYearID, f.Month)
		if f.FeeReferenceKind == model.FeeReferenceKindStructure {
			q = q.Where("student_fee_structure_id = ?", f.FeeReferenceID)
		} else {
			q = q.Where("student_fee_id = ?", f.FeeReferenceID)
		}

		var fee feemodel.StudentFeeModel
		if err := q.Take(&fee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnprocessableEntity,
					"Fee line tidak ditemukan: "+f.FeeType+" ("+f.Month+")")
			}
			return err
		}
		due := fee.StudentFeeOriginalAmount.Sub(fee.StudentFeePaidAmount)
		if due.IsNegative() {
			due = decimal.Zero
		}
		totalDue = totalDue.Add(due)
	}

	if req.PaidAmount.GreaterThan(totalDue.Add(decimal.NewFromFloat(0.01))) {
		observability.AllocationRemainder.Inc()
		return fiber.NewError(fiber.StatusUnprocessableEntity, "paid_amount melebihi total tagihan terpilih")
	}
	return nil
}

func (h *PaymentController) offlineConfirmation(p *model.PaymentModel) dto.OfflineConfirmation {
	data := make([]dto.OfflineFeeRecord, 0, len(p.PaymentItems))
	for _, it := range p.PaymentItems {
		data = append(data, dto.OfflineFeeRecord{
			FeeType:    it.PaymentItemFeeType,
			PaidAmount: feeAmount(it.PaymentItemAmount),
			MonthName:  it.PaymentItemMonth,
		})
	}
	return dto.OfflineConfirmation{
		ReceiptNo:       p.PaymentReceiptNo,
		PaymentID:       p.PaymentID,
		PaymentMethod:   p.PaymentMethod,
		PaidAt:          p.PaymentPaidAt,
		Data:            data,
		TotalAmountPaid: feeAmount(p.PaymentAmount),
	}
}

func (h *PaymentController) onlineConfirmation(p *model.PaymentModel) dto.OnlineConfirmation {
	payments := make([]dto.OnlinePaymentRecord, 0, len(p.PaymentItems))
	for _, it := range p.PaymentItems {
		payments = append(payments, dto.OnlinePaymentRecord{
			FeeType: it.PaymentItemFeeType,
			Month:   it.PaymentItemMonth,
			Amount:  feeAmount(it.PaymentItemAmount),
		})
	}
	return dto.OnlineConfirmation{
		ReceiptNo:     p.PaymentReceiptNo,
		PaymentID:     p.PaymentID,
		PaymentMethod: p.PaymentMethod,
		PaidAt:        p.PaymentPaidAt,
		Payments:      payments,
	}
}

func feeAmount(d decimal.Decimal) feesdto.Amount {
	return feesdto.Amount{Decimal: d}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique constraint")
}
