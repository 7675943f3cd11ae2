package controller

import (
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "schoolfeesku_backend/internals/features/finance/payments/model"
	svc "schoolfeesku_backend/internals/features/finance/payments/service"
	helper "schoolfeesku_backend/internals/helpers"
	"schoolfeesku_backend/internals/observability"
)

/* =======================================================================
   Webhook (server-to-server notification dari gateway)
   Endpoint ini PUBLIC (tanpa auth); keasliannya dijamin signature SHA512.
======================================================================= */

type gatewayNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
}

// POST /payments/webhook
func (h *PaymentController) Webhook(c *fiber.Ctx) error {
	var notif gatewayNotification
	if err := sonic.Unmarshal(c.Body(), &notif); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload notifikasi tidak valid")
	}
	if notif.OrderID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "order_id kosong")
	}

	if !svc.VerifyWebhookSignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey, h.GatewayServerKey) {
		log.Printf("[WEBHOOK] ❌ signature mismatch order_id=%s", notif.OrderID)
		return fiber.NewError(fiber.StatusUnauthorized, "Signature tidak valid")
	}

	var p model.PaymentModel
	if err := h.DB.WithContext(c.Context()).
		Preload("PaymentItems").
		First(&p, "payment_gateway_order_id = ? AND payment_deleted_at IS NULL", notif.OrderID).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Order tidak dikenal: tetap 200 agar gateway berhenti retry,
			// event dicatat untuk investigasi.
			_ = h.logGatewayEvent(c, nil, notif.TransactionStatus, notif.OrderID, notif.TransactionID, notif.SignatureKey,
				strPtr("payment not found"))
			return helper.JsonOK(c, "OK", fiber.Map{"order_id": notif.OrderID})
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	observability.GatewayEventsTotal.WithLabelValues(notif.TransactionStatus).Inc()

	now := time.Now()
	newStatus, fields := svc.MapGatewayStatus(p.PaymentStatus, notif.TransactionStatus, notif.FraudStatus, now)

	// Notifikasi ulang untuk payment yang sudah paid: idempotent, catat saja.
	if p.IsPaid() {
		_ = h.logGatewayEvent(c, &p, notif.TransactionStatus, notif.OrderID, notif.TransactionID, notif.SignatureKey, nil)
		return helper.JsonOK(c, "OK", fiber.Map{"order_id": notif.OrderID, "status": p.PaymentStatus})
	}

	err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		becamePaid := newStatus == model.PaymentStatusPaid && p.PaymentStatus != model.PaymentStatusPaid

		p.PaymentStatus = newStatus
		if notif.TransactionID != "" {
			p.PaymentGatewayPaymentID = &notif.TransactionID
		}
		if fields.PaidAt != nil {
			p.PaymentPaidAt = fields.PaidAt
		}
		if fields.CanceledAt != nil {
			p.PaymentCanceledAt = fields.CanceledAt
		}
		if fields.FailedAt != nil {
			p.PaymentFailedAt = fields.FailedAt
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		if becamePaid {
			if err := svc.ApplyFeeSideEffects(c.Context(), tx, p.PaymentStudentYearID, p.PaymentItems); err != nil {
				return err
			}
			observability.PaymentsTotal.WithLabelValues(model.PaymentMethodOnline, "paid").Inc()
		}
		return nil
	})
	if err != nil {
		_ = h.logGatewayEvent(c, &p, notif.TransactionStatus, notif.OrderID, notif.TransactionID, notif.SignatureKey,
			strPtr(err.Error()))
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses notifikasi")
	}

	_ = h.logGatewayEvent(c, &p, notif.TransactionStatus, notif.OrderID, notif.TransactionID, notif.SignatureKey, nil)
	log.Printf("[WEBHOOK] ✅ order_id=%s status=%s", notif.OrderID, p.PaymentStatus)

	return helper.JsonOK(c, "OK", fiber.Map{"order_id": notif.OrderID, "status": p.PaymentStatus})
}

/* ===================== Audit trail ===================== */

func (h *PaymentController) logGatewayEvent(c *fiber.Ctx, p *model.PaymentModel, eventType, orderID, externalID, signature string, procErr *string) error {
	ev := model.PaymentGatewayEventModel{
		PaymentGatewayEventType:      &eventType,
		PaymentGatewayEventOrderID:   &orderID,
		PaymentGatewayEventSignature: &signature,
		PaymentGatewayEventPayload:   datatypes.JSON(c.Body()),
		PaymentGatewayEventStatus:    model.GatewayEventStatusProcessed,
		PaymentGatewayEventError:     procErr,
	}
	if p != nil {
		id := p.PaymentID
		ev.PaymentGatewayEventPaymentID = &id
	}
	if externalID != "" {
		ev.PaymentGatewayEventExternalID = &externalID
	}
	if procErr != nil {
		ev.PaymentGatewayEventStatus = model.GatewayEventStatusFailed
	}
	now := time.Now()
	ev.PaymentGatewayEventProcessedAt = &now

	if err := h.DB.WithContext(c.Context()).Create(&ev).Error; err != nil {
		log.Printf("[WEBHOOK] gagal simpan gateway event order_id=%s err=%v", orderID, err)
		return err
	}
	return nil
}

func strPtr(s string) *string { return &s }
