package dto

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* =========================================================
   Tolerant amount
   - backend kadang mengirim angka sebagai string ("500")
   - nilai kosong / non-numerik dianggap 0, bukan error
========================================================= */

type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount { return Amount{d} }

func AmountFromFloat(f float64) Amount { return Amount{decimal.NewFromFloat(f)} }

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

/* =========================================================
   Fee preview wire shapes
========================================================= */

type FeePreviewFee struct {
	FeeID          string  `json:"fee_id"`
	FeeType        string  `json:"fee_type"`
	OriginalAmount Amount  `json:"original_amount"`
	PaidAmount     Amount  `json:"paid_amount"`
	LateFee        Amount  `json:"late_fee"`
	Status         string  `json:"status"`
	FeeStructureID *string `json:"fee_structure_id,omitempty"`
}

type FeePreviewMonth struct {
	Month   string          `json:"month"`
	MonthID *int            `json:"month_id,omitempty"`
	Fees    []FeePreviewFee `json:"fees"`
}

// FeePreviewResponse menerima dua bentuk dari backend:
// array of month entries, atau satu object saat datanya cuma satu bulan
// (varian endpoint per-student).
type FeePreviewResponse []FeePreviewMonth

func (r *FeePreviewResponse) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*r = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var months []FeePreviewMonth
		if err := json.Unmarshal(b, &months); err != nil {
			return err
		}
		*r = months
		return nil
	}
	var one FeePreviewMonth
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*r = []FeePreviewMonth{one}
	return nil
}

// ClassStudentPreview: breakdown per siswa untuk feed per kelas.
type ClassStudentPreview struct {
	StudentYearID uuid.UUID          `json:"student_year_id"`
	Months        FeePreviewResponse `json:"months"`
}

/* ================== Fee structure feed ================== */

type FeeStructureRef struct {
	ID      string `json:"id"`
	FeeType string `json:"fee_type"`
}
