package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Selaras dengan ENUM di PostgreSQL: payment_status, payment_method */

const (
	PaymentStatusInitiated        = "initiated"
	PaymentStatusPending          = "pending"
	PaymentStatusAwaitingCallback = "awaiting_callback"
	PaymentStatusPaid             = "paid"
	PaymentStatusRefunded         = "refunded"
	PaymentStatusFailed           = "failed"
	PaymentStatusCanceled         = "canceled"
	PaymentStatusExpired          = "expired"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCheque = "cheque"
	PaymentMethodOnline = "online"
)

/* ===================== Model ===================== */

type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentStudentYearID uuid.UUID `gorm:"column:payment_student_year_id;type:uuid;not null;index" json:"payment_student_year_id"`
	PaymentSchoolYearID  uuid.UUID `gorm:"column:payment_school_year_id;type:uuid;not null;index" json:"payment_school_year_id"`

	// Nomor kuitansi incremental per school year
	PaymentReceiptNo int64 `gorm:"column:payment_receipt_no;not null" json:"payment_receipt_no"`

	PaymentAmount   decimal.Decimal `gorm:"column:payment_amount;type:numeric(12,2);not null" json:"payment_amount"`
	PaymentCurrency string          `gorm:"column:payment_currency;type:varchar(8);not null;default:IDR" json:"payment_currency"`

	PaymentStatus string `gorm:"column:payment_status;type:payment_status;not null;default:'initiated'" json:"payment_status"`
	PaymentMethod string `gorm:"column:payment_method;type:payment_method;not null" json:"payment_method"`

	// Info gateway (nil untuk metode offline)
	PaymentGatewayOrderID   *string `gorm:"column:payment_gateway_order_id;uniqueIndex" json:"payment_gateway_order_id,omitempty"`
	PaymentGatewayPaymentID *string `gorm:"column:payment_gateway_payment_id" json:"payment_gateway_payment_id,omitempty"`
	PaymentGatewaySignature *string `gorm:"column:payment_gateway_signature" json:"payment_gateway_signature,omitempty"`
	PaymentCheckoutURL      *string `gorm:"column:payment_checkout_url" json:"payment_checkout_url,omitempty"`
	PaymentGatewayToken     *string `gorm:"column:payment_gateway_token" json:"payment_gateway_token,omitempty"`
	PaymentIdempotencyKey   *string `gorm:"column:payment_idempotency_key;uniqueIndex" json:"payment_idempotency_key,omitempty"`

	PaymentReceivedBy *string `gorm:"column:payment_received_by" json:"payment_received_by,omitempty"`
	PaymentRemarks    *string `gorm:"column:payment_remarks" json:"payment_remarks,omitempty"`

	PaymentRequestedAt *time.Time `gorm:"column:payment_requested_at" json:"payment_requested_at,omitempty"`
	PaymentPaidAt      *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`
	PaymentFailedAt    *time.Time `gorm:"column:payment_failed_at" json:"payment_failed_at,omitempty"`
	PaymentCanceledAt  *time.Time `gorm:"column:payment_canceled_at" json:"payment_canceled_at,omitempty"`

	PaymentMeta datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`

	PaymentItems []PaymentItemModel `gorm:"foreignKey:PaymentItemPaymentID;references:PaymentID" json:"payment_items,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

/* ===================== Helpers ===================== */

func (p *PaymentModel) IsOnline() bool { return p.PaymentMethod == PaymentMethodOnline }

func (p *PaymentModel) IsPaid() bool {
	return p.PaymentStatus == PaymentStatusPaid || p.PaymentStatus == PaymentStatusRefunded
}

func (p *PaymentModel) IsOpen() bool {
	switch p.PaymentStatus {
	case PaymentStatusInitiated, PaymentStatusPending, PaymentStatusAwaitingCallback:
		return true
	default:
		return false
	}
}
