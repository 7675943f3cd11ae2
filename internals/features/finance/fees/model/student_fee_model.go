package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StudentFeeStatusPending = "pending"
	StudentFeeStatusPartial = "partial"
	StudentFeeStatusPaid    = "paid"
)

// StudentFeeModel: satu baris per (student_year, bulan, fee type).
// Sumber fee-preview feed.
type StudentFeeModel struct {
	StudentFeeID uuid.UUID `gorm:"column:student_fee_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_fee_id"`

	StudentFeeStudentYearID uuid.UUID  `gorm:"column:student_fee_student_year_id;type:uuid;not null;index" json:"student_fee_student_year_id"`
	StudentFeeSchoolYearID  uuid.UUID  `gorm:"column:student_fee_school_year_id;type:uuid;not null;index" json:"student_fee_school_year_id"`
	StudentFeeClassID       *uuid.UUID `gorm:"column:student_fee_class_id;type:uuid;index" json:"student_fee_class_id,omitempty"`

	// Periode
	StudentFeeMonth   string `gorm:"column:student_fee_month;type:varchar(16);not null" json:"student_fee_month"` // label, mis. "April"
	StudentFeeMonthID *int16 `gorm:"column:student_fee_month_id;type:smallint" json:"student_fee_month_id,omitempty"`

	StudentFeeType        string     `gorm:"column:student_fee_type;type:varchar(64);not null" json:"student_fee_type"`
	StudentFeeStructureID *uuid.UUID `gorm:"column:student_fee_structure_id;type:uuid" json:"student_fee_structure_id,omitempty"`

	StudentFeeOriginalAmount decimal.Decimal `gorm:"column:student_fee_original_amount;type:numeric(12,2);not null" json:"student_fee_original_amount"`
	StudentFeePaidAmount     decimal.Decimal `gorm:"column:student_fee_paid_amount;type:numeric(12,2);not null;default:0" json:"student_fee_paid_amount"`
	StudentFeeLateFee        decimal.Decimal `gorm:"column:student_fee_late_fee;type:numeric(12,2);not null;default:0" json:"student_fee_late_fee"`

	StudentFeeStatus string `gorm:"column:student_fee_status;type:varchar(16);not null;default:'pending'" json:"student_fee_status"`

	StudentFeeCreatedAt time.Time      `gorm:"column:student_fee_created_at;autoCreateTime" json:"student_fee_created_at"`
	StudentFeeUpdatedAt *time.Time     `gorm:"column:student_fee_updated_at;autoUpdateTime" json:"student_fee_updated_at,omitempty"`
	StudentFeeDeletedAt gorm.DeletedAt `gorm:"column:student_fee_deleted_at;index" json:"student_fee_deleted_at,omitempty"`
}

func (StudentFeeModel) TableName() string { return "student_fees" }

// ApplyPayment menambah paid amount lalu menghitung ulang status.
func (m *StudentFeeModel) ApplyPayment(amount decimal.Decimal) {
	if amount.IsNegative() {
		return
	}
	m.StudentFeePaidAmount = m.StudentFeePaidAmount.Add(amount)
	m.RecomputeStatus()
}

func (m *StudentFeeModel) RecomputeStatus() {
	switch {
	case m.StudentFeeOriginalAmount.IsPositive() && m.StudentFeePaidAmount.GreaterThanOrEqual(m.StudentFeeOriginalAmount):
		m.StudentFeeStatus = StudentFeeStatusPaid
	case m.StudentFeePaidAmount.IsPositive():
		m.StudentFeeStatus = StudentFeeStatusPartial
	default:
		m.StudentFeeStatus = StudentFeeStatusPending
	}
}
