package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "schoolfeesku_backend/internals/features/finance/fees/model"
)

/* ================== REQUESTS ================== */

type CreateFeeStructureRequest struct {
	FeeStructureSchoolYearID uuid.UUID `json:"fee_structure_school_year_id" validate:"required"`
	FeeStructureYearLevel    string    `json:"fee_structure_year_level"     validate:"required,max=32"`
	FeeStructureFeeType      string    `json:"fee_structure_fee_type"       validate:"required,max=64"`
	FeeStructureAmount       Amount    `json:"fee_structure_amount"         validate:"required"`
	FeeStructureLateFee      *Amount   `json:"fee_structure_late_fee"       validate:"omitempty"`
}

func (r CreateFeeStructureRequest) ToModel() *m.FeeStructureModel {
	lateFee := decimal.Zero
	if r.FeeStructureLateFee != nil {
		lateFee = r.FeeStructureLateFee.Decimal
	}
	return &m.FeeStructureModel{
		FeeStructureSchoolYearID: r.FeeStructureSchoolYearID,
		FeeStructureYearLevel:    r.FeeStructureYearLevel,
		FeeStructureFeeType:      r.FeeStructureFeeType,
		FeeStructureAmount:       r.FeeStructureAmount.Decimal,
		FeeStructureLateFee:      lateFee,
	}
}

// Update (partial)
type UpdateFeeStructureRequest struct {
	FeeStructureYearLevel *string `json:"fee_structure_year_level" validate:"omitempty,max=32"`
	FeeStructureFeeType   *string `json:"fee_structure_fee_type"   validate:"omitempty,max=64"`
	FeeStructureAmount    *Amount `json:"fee_structure_amount"     validate:"omitempty"`
	FeeStructureLateFee   *Amount `json:"fee_structure_late_fee"   validate:"omitempty"`
}

func (r UpdateFeeStructureRequest) ApplyTo(mo *m.FeeStructureModel) {
	if r.FeeStructureYearLevel != nil {
		mo.FeeStructureYearLevel = *r.FeeStructureYearLevel
	}
	if r.FeeStructureFeeType != nil {
		mo.FeeStructureFeeType = *r.FeeStructureFeeType
	}
	if r.FeeStructureAmount != nil {
		mo.FeeStructureAmount = r.FeeStructureAmount.Decimal
	}
	if r.FeeStructureLateFee != nil {
		mo.FeeStructureLateFee = r.FeeStructureLateFee.Decimal
	}
}

type ListFeeStructureQuery struct {
	SchoolYearID uuid.UUID `query:"school_year_id" validate:"required"`
	YearLevel    *string   `query:"year_level"     validate:"omitempty,max=32"`
	Limit        int       `query:"limit"          validate:"omitempty,gte=1,lte=100"`
	Offset       int       `query:"offset"         validate:"omitempty,gte=0"`
}

/* ================== RESPONSES ================== */

type FeeStructureResponse struct {
	FeeStructureID           uuid.UUID       `json:"id"`
	FeeStructureSchoolYearID uuid.UUID       `json:"school_year_id"`
	FeeStructureYearLevel    string          `json:"year_level"`
	FeeStructureFeeType      string          `json:"fee_type"`
	FeeStructureAmount       decimal.Decimal `json:"amount"`
	FeeStructureLateFee      decimal.Decimal `json:"late_fee"`
	FeeStructureCreatedAt    time.Time       `json:"created_at"`
}

func FromFeeStructureModel(x m.FeeStructureModel) FeeStructureResponse {
	return FeeStructureResponse{
		FeeStructureID:           x.FeeStructureID,
		FeeStructureSchoolYearID: x.FeeStructureSchoolYearID,
		FeeStructureYearLevel:    x.FeeStructureYearLevel,
		FeeStructureFeeType:      x.FeeStructureFeeType,
		FeeStructureAmount:       x.FeeStructureAmount,
		FeeStructureLateFee:      x.FeeStructureLateFee,
		FeeStructureCreatedAt:    x.FeeStructureCreatedAt,
	}
}

func FromFeeStructureModels(list []m.FeeStructureModel) []FeeStructureResponse {
	out := make([]FeeStructureResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromFeeStructureModel(it))
	}
	return out
}

// StructureRefsFromModels membentuk fee-structure feed ({id, fee_type})
// yang dikonsumsi normalizer.
func StructureRefsFromModels(list []m.FeeStructureModel) []FeeStructureRef {
	out := make([]FeeStructureRef, 0, len(list))
	for _, it := range list {
		out = append(out, FeeStructureRef{ID: it.FeeStructureID.String(), FeeType: it.FeeStructureFeeType})
	}
	return out
}
