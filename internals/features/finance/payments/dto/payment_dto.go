package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feesdto "schoolfeesku_backend/internals/features/finance/fees/dto"
	m "schoolfeesku_backend/internals/features/finance/payments/model"
)

/* ================== Submission ================== */

type SubmissionFee struct {
	FeeReferenceKind string         `json:"fee_reference_kind" validate:"required,oneof=structure fee_line"`
	FeeReferenceID   string         `json:"fee_reference_id"   validate:"required,max=64"`
	FeeType          string         `json:"fee_type"           validate:"required,max=64"`
	Month            string         `json:"month"              validate:"required,max=16"`
	MonthID          *int16         `json:"month_id"           validate:"omitempty,min=1,max=12"`
	Amount           feesdto.Amount `json:"amount"`
}

// PaymentSubmissionRequest dibuat fresh per submit; tidak pernah disimpan
// client-side melewati lifetime request.
type PaymentSubmissionRequest struct {
	StudentYearID  uuid.UUID       `json:"student_year_id" validate:"required"`
	SchoolYearID   uuid.UUID       `json:"school_year_id"  validate:"required"`
	PaymentMethod  string          `json:"payment_method"  validate:"required,oneof=cash cheque online"`
	PaidAmount     feesdto.Amount  `json:"paid_amount"`
	ReceivedBy     *string         `json:"received_by"     validate:"omitempty,max=128"`
	Remarks        *string         `json:"remarks"         validate:"omitempty,max=256"`
	IdempotencyKey *string         `json:"idempotency_key" validate:"omitempty,max=64"`
	Fees           []SubmissionFee `json:"fees"            validate:"required,min=1,dive"`
}

func (r PaymentSubmissionRequest) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, f := range r.Fees {
		total = total.Add(f.Amount.Decimal)
	}
	return total
}

func (r PaymentSubmissionRequest) ToItems(paymentID uuid.UUID) []m.PaymentItemModel {
	items := make([]m.PaymentItemModel, 0, len(r.Fees))
	for _, f := range r.Fees {
		items = append(items, m.PaymentItemModel{
			PaymentItemPaymentID:        paymentID,
			PaymentItemFeeReferenceKind: f.FeeReferenceKind,
			PaymentItemFeeReferenceID:   f.FeeReferenceID,
			PaymentItemFeeType:          f.FeeType,
			PaymentItemMonth:            f.Month,
			PaymentItemMonthID:          f.MonthID,
			PaymentItemAmount:           f.Amount.Decimal,
		})
	}
	return items
}

/* ================== Offline confirmation (wire shape 1) ================== */

type OfflineFeeRecord struct {
	FeeType    string         `json:"fee_type"`
	PaidAmount feesdto.Amount `json:"paid_amount"`
	MonthName  string         `json:"month_name"`
}

// OfflineConfirmation: response pembayaran cash/cheque, array `data`
// bersarang + agregat total_amount_paid.
type OfflineConfirmation struct {
	ReceiptNo       int64              `json:"receipt_no"`
	PaymentID       uuid.UUID          `json:"payment_id"`
	PaymentMethod   string             `json:"payment_method"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	Data            []OfflineFeeRecord `json:"data"`
	TotalAmountPaid feesdto.Amount     `json:"total_amount_paid"`
}

/* ================== Online pathway (wire shape 2) ================== */

// Order descriptor fase initiate. Field dijaga gateway-neutral.
type OnlineInitiateResponse struct {
	GatewayOrderID string          `json:"gateway_order_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	ReceiptNo      int64           `json:"receipt_no"`
	GatewayToken   string          `json:"gateway_token,omitempty"`
	CheckoutURL    string          `json:"checkout_url,omitempty"`
}

// Bukti dari widget gateway setelah sukses.
type OnlineConfirmRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"   validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	GatewaySignature string `json:"gateway_signature"  validate:"required"`
}

type OnlinePaymentRecord struct {
	FeeType string         `json:"fee_type"`
	Month   string         `json:"month,omitempty"`
	Amount  feesdto.Amount `json:"amount"`
}

// OnlineConfirmation: flat `payments` array, tanpa `data` bersarang.
type OnlineConfirmation struct {
	ReceiptNo     int64                 `json:"receipt_no"`
	PaymentID     uuid.UUID             `json:"payment_id"`
	PaymentMethod string                `json:"payment_method"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	Payments      []OnlinePaymentRecord `json:"payments"`
}

/* ================== Receipt view ================== */

type ReceiptLineView struct {
	FeeType string          `json:"fee_type"`
	Month   string          `json:"month,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
}

type ReceiptResponse struct {
	ReceiptNo     int64             `json:"receipt_no"`
	PaymentID     uuid.UUID         `json:"payment_id"`
	PaymentMethod string            `json:"payment_method"`
	PaidAt        *time.Time        `json:"paid_at,omitempty"`
	TotalPaid     decimal.Decimal   `json:"total_paid"`
	Lines         []ReceiptLineView `json:"lines"`
}
