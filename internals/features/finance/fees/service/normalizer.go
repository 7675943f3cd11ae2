package service

import (
	"strings"

	dto "schoolfeesku_backend/internals/features/finance/fees/dto"
)

/* =========================================================
   Fee Ledger Normalizer
   - fungsi murni atas dua response backend (preview + structure list)
   - tidak pernah melempar error melewati boundary-nya;
     input kosong menghasilkan ledger kosong
========================================================= */

// NormalizeLedger mengubah fee preview + fee structure list menjadi satu
// FeeLedger kanonik: urutan bulan & baris mengikuti urutan response.
func NormalizeLedger(preview dto.FeePreviewResponse, structures []dto.FeeStructureRef) FeeLedger {
	led := FeeLedger{Months: make([]MonthGroup, 0, len(preview))}

	for _, m := range preview {
		mg := MonthGroup{
			Month:   m.Month,
			MonthID: m.MonthID,
			Fees:    make([]FeeLine, 0, len(m.Fees)),
		}
		if mg.MonthID == nil {
			mg.MonthID = MonthNumber(m.Month)
		}

		for _, f := range m.Fees {
			line := FeeLine{
				FeeID:          f.FeeID,
				FeeType:        f.FeeType,
				OriginalAmount: f.OriginalAmount.Decimal,
				PaidAmount:     f.PaidAmount.Decimal,
				LateFee:        f.LateFee.Decimal,
				FeeStructureID: f.FeeStructureID,
				Status:         normalizeStatus(f.Status),
			}
			if line.FeeStructureID == nil {
				line.FeeStructureID = resolveStructureID(f.FeeType, structures)
			}
			if line.Status == "" {
				line.Status = deriveStatus(line)
			}
			mg.Fees = append(mg.Fees, line)
		}

		led.Months = append(led.Months, mg)
	}

	return led
}

// resolveStructureID cocokkan fee_type terhadap structure list, first match wins.
// List diasumsikan maksimal satu entry per fee_type untuk scope terpilih.
func resolveStructureID(feeType string, structures []dto.FeeStructureRef) *string {
	want := strings.ToLower(strings.TrimSpace(feeType))
	for _, s := range structures {
		if strings.ToLower(strings.TrimSpace(s.FeeType)) == want {
			id := s.ID
			return &id
		}
	}
	return nil
}

func normalizeStatus(s string) FeeStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return FeeStatusPaid
	case "partial":
		return FeeStatusPartial
	case "pending":
		return FeeStatusPending
	}
	return ""
}

// deriveStatus dipakai bila backend tidak mengirim status.
func deriveStatus(l FeeLine) FeeStatus {
	switch {
	case l.OriginalAmount.IsPositive() && l.PaidAmount.GreaterThanOrEqual(l.OriginalAmount):
		return FeeStatusPaid
	case l.PaidAmount.IsPositive():
		return FeeStatusPartial
	default:
		return FeeStatusPending
	}
}
