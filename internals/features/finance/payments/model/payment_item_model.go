package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FeeReferenceKindStructure = "structure"
	FeeReferenceKindFeeLine   = "fee_line"
)

// PaymentItemModel: satu baris alokasi per fee line dalam satu payment.
type PaymentItemModel struct {
	PaymentItemID uuid.UUID `gorm:"column:payment_item_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_item_id"`

	PaymentItemPaymentID uuid.UUID `gorm:"column:payment_item_payment_id;type:uuid;not null;index" json:"payment_item_payment_id"`

	// Referensi fee ber-tag: structure id atau fee line id (dua namespace
	// berbeda, jangan dicampur dalam satu field tanpa tag).
	PaymentItemFeeReferenceKind string `gorm:"column:payment_item_fee_reference_kind;type:varchar(16);not null" json:"payment_item_fee_reference_kind"`
	PaymentItemFeeReferenceID   string `gorm:"column:payment_item_fee_reference_id;type:varchar(64);not null" json:"payment_item_fee_reference_id"`

	PaymentItemFeeType string `gorm:"column:payment_item_fee_type;type:varchar(64);not null" json:"payment_item_fee_type"`
	PaymentItemMonth   string `gorm:"column:payment_item_month;type:varchar(16);not null" json:"payment_item_month"`
	PaymentItemMonthID *int16 `gorm:"column:payment_item_month_id;type:smallint" json:"payment_item_month_id,omitempty"`

	PaymentItemAmount decimal.Decimal `gorm:"column:payment_item_amount;type:numeric(12,2);not null" json:"payment_item_amount"`

	PaymentItemCreatedAt time.Time      `gorm:"column:payment_item_created_at;autoCreateTime" json:"payment_item_created_at"`
	PaymentItemDeletedAt gorm.DeletedAt `gorm:"column:payment_item_deleted_at;index" json:"payment_item_deleted_at,omitempty"`
}

func (PaymentItemModel) TableName() string { return "payment_items" }
