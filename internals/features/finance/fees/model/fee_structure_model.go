package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FeeStructureModel adalah sumber fee-structure feed: mapping kategori fee
// ke structure id, scoped per school year + year level.
type FeeStructureModel struct {
	FeeStructureID uuid.UUID `gorm:"column:fee_structure_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_structure_id"`

	FeeStructureSchoolYearID uuid.UUID `gorm:"column:fee_structure_school_year_id;type:uuid;not null;index" json:"fee_structure_school_year_id"`
	FeeStructureYearLevel    string    `gorm:"column:fee_structure_year_level;type:varchar(32);not null" json:"fee_structure_year_level"`

	FeeStructureFeeType string          `gorm:"column:fee_structure_fee_type;type:varchar(64);not null" json:"fee_structure_fee_type"`
	FeeStructureAmount  decimal.Decimal `gorm:"column:fee_structure_amount;type:numeric(12,2);not null" json:"fee_structure_amount"`
	FeeStructureLateFee decimal.Decimal `gorm:"column:fee_structure_late_fee;type:numeric(12,2);not null;default:0" json:"fee_structure_late_fee"`

	FeeStructureCreatedAt time.Time      `gorm:"column:fee_structure_created_at;autoCreateTime" json:"fee_structure_created_at"`
	FeeStructureUpdatedAt *time.Time     `gorm:"column:fee_structure_updated_at;autoUpdateTime" json:"fee_structure_updated_at,omitempty"`
	FeeStructureDeletedAt gorm.DeletedAt `gorm:"column:fee_structure_deleted_at;index" json:"fee_structure_deleted_at,omitempty"`
}

func (FeeStructureModel) TableName() string { return "fee_structures" }
