package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* ================== Ledger view (payment screen) ================== */

type FeeLineView struct {
	FeeID          string          `json:"fee_id"`
	FeeType        string          `json:"fee_type"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	LateFee        decimal.Decimal `json:"late_fee"`
	DueAmount      decimal.Decimal `json:"due_amount"`
	Status         string          `json:"status"`
	FeeStructureID *string         `json:"fee_structure_id,omitempty"`
}

type MonthGroupView struct {
	Month   string        `json:"month"`
	MonthID *int          `json:"month_id,omitempty"`
	Fees    []FeeLineView `json:"fees"`
}

type FeeLedgerResponse struct {
	Months          []MonthGroupView `json:"months"`
	SuggestedAmount decimal.Decimal  `json:"suggested_amount"`
}

/* ================== Allocation preview ================== */

type SelectedFeeKey struct {
	Month string `json:"month"  validate:"required"`
	FeeID string `json:"fee_id" validate:"required"`
}

type AllocatePreviewRequest struct {
	StudentYearID uuid.UUID        `json:"student_year_id" validate:"required"`
	SchoolYearID  uuid.UUID        `json:"school_year_id"  validate:"required"`
	Selected      []SelectedFeeKey `json:"selected"        validate:"required,min=1,dive"`
	Amount        Amount           `json:"amount"`
}

type AllocationEntryView struct {
	FeeReferenceKind string          `json:"fee_reference_kind"` // structure | fee_line
	FeeReferenceID   string          `json:"fee_reference_id"`
	FeeType          string          `json:"fee_type"`
	Month            string          `json:"month"`
	MonthID          *int            `json:"month_id,omitempty"`
	Due              decimal.Decimal `json:"due"`
	Amount           decimal.Decimal `json:"amount"`
}

type AllocationResponse struct {
	Allocations       []AllocationEntryView `json:"allocations"`
	BaseAmount        decimal.Decimal       `json:"base_amount"`
	PaidAlreadyAmount decimal.Decimal       `json:"paid_already_amount"`
	DueAmount         decimal.Decimal       `json:"due_amount"`
	Remainder         decimal.Decimal       `json:"remainder"`
	SuggestedAmount   decimal.Decimal       `json:"suggested_amount"`
}
