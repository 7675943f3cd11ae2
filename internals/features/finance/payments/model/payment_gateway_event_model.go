package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GatewayEventStatusReceived  = "received"
	GatewayEventStatusProcessed = "processed"
	GatewayEventStatusFailed    = "failed"
)

// PaymentGatewayEventModel: audit trail notifikasi gateway (webhook/confirm).
type PaymentGatewayEventModel struct {
	PaymentGatewayEventID uuid.UUID `gorm:"column:payment_gateway_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_gateway_event_id"`

	PaymentGatewayEventPaymentID *uuid.UUID `gorm:"column:payment_gateway_event_payment_id;type:uuid;index" json:"payment_gateway_event_payment_id,omitempty"`

	PaymentGatewayEventType       *string `gorm:"column:payment_gateway_event_type" json:"payment_gateway_event_type,omitempty"`
	PaymentGatewayEventOrderID    *string `gorm:"column:payment_gateway_event_order_id;index" json:"payment_gateway_event_order_id,omitempty"`
	PaymentGatewayEventExternalID *string `gorm:"column:payment_gateway_event_external_id" json:"payment_gateway_event_external_id,omitempty"`
	PaymentGatewayEventSignature  *string `gorm:"column:payment_gateway_event_signature" json:"payment_gateway_event_signature,omitempty"`

	PaymentGatewayEventHeaders datatypes.JSON `gorm:"column:payment_gateway_event_headers;type:jsonb" json:"payment_gateway_event_headers,omitempty"`
	PaymentGatewayEventPayload datatypes.JSON `gorm:"column:payment_gateway_event_payload;type:jsonb" json:"payment_gateway_event_payload,omitempty"`

	PaymentGatewayEventStatus string  `gorm:"column:payment_gateway_event_status;type:varchar(16);not null;default:'received'" json:"payment_gateway_event_status"`
	PaymentGatewayEventError  *string `gorm:"column:payment_gateway_event_error" json:"payment_gateway_event_error,omitempty"`

	PaymentGatewayEventProcessedAt *time.Time `gorm:"column:payment_gateway_event_processed_at" json:"payment_gateway_event_processed_at,omitempty"`

	PaymentGatewayEventCreatedAt time.Time      `gorm:"column:payment_gateway_event_created_at;autoCreateTime" json:"payment_gateway_event_created_at"`
	PaymentGatewayEventDeletedAt gorm.DeletedAt `gorm:"column:payment_gateway_event_deleted_at;index" json:"payment_gateway_event_deleted_at,omitempty"`
}

func (PaymentGatewayEventModel) TableName() string { return "payment_gateway_events" }
