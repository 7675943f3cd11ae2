package service

import (
	"sort"

	"github.com/shopspring/decimal"
)

/* =========================================================
   Payment Allocator
   - distribusi greedy satu nominal ke baris terpilih,
     due terbesar didahulukan (stable sort)
========================================================= */

type AllocationEntry struct {
	FeeReferenceKind FeeReferenceKind
	FeeReferenceID   string
	FeeType          string
	Month            string
	MonthID          *int
	Due              decimal.Decimal
	Amount           decimal.Decimal
}

type AllocationResult struct {
	Allocations []AllocationEntry

	// Ringkasan dihitung terpisah atas set baris terpilih yang sama,
	// bukan diturunkan dari hasil alokasi (dipakai panel summary).
	BaseAmount        decimal.Decimal
	PaidAlreadyAmount decimal.Decimal
	DueAmount         decimal.Decimal

	// Sisa nominal yang tidak terserap. Dilaporkan apa adanya;
	// kebijakan tolak/terima diputuskan di boundary submit.
	Remainder decimal.Decimal
}

// Allocate membagi totalAmount ke baris terpilih. Urutan proses: due
// tertinggi dulu; baris ber-due sama mempertahankan urutan ledger.
// Selection kosong menghasilkan hasil serba-nol.
func Allocate(led FeeLedger, sel Selection, totalAmount decimal.Decimal) AllocationResult {
	res := AllocationResult{
		Allocations:       []AllocationEntry{},
		BaseAmount:        decimal.Zero,
		PaidAlreadyAmount: decimal.Zero,
		DueAmount:         decimal.Zero,
		Remainder:         decimal.Zero,
	}
	if totalAmount.IsNegative() {
		totalAmount = decimal.Zero
	}

	lines := sel.SelectedLines(led)
	if len(lines) == 0 {
		res.Remainder = totalAmount
		return res
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Line.DueAmount().GreaterThan(lines[j].Line.DueAmount())
	})

	remaining := totalAmount
	for _, sl := range lines {
		due := sl.Line.DueAmount()
		applied := decimal.Min(remaining, due)
		applied = applied.Round(2)

		kind, ref := sl.Line.Reference()
		res.Allocations = append(res.Allocations, AllocationEntry{
			FeeReferenceKind: kind,
			FeeReferenceID:   ref,
			FeeType:          sl.Line.FeeType,
			Month:            sl.Month,
			MonthID:          sl.MonthID,
			Due:              due,
			Amount:           applied,
		})
		remaining = remaining.Sub(applied)
	}
	res.Remainder = remaining

	// ringkasan: satu pass lagi atas baris terpilih
	for _, sl := range lines {
		res.BaseAmount = res.BaseAmount.Add(sl.Line.OriginalAmount)
		res.PaidAlreadyAmount = res.PaidAlreadyAmount.Add(sl.Line.PaidAmount)
		res.DueAmount = res.DueAmount.Add(sl.Line.DueAmount())
	}

	return res
}

// SuggestedAmount = total due baris terpilih. Field "amount to pay" di form
// disinkronkan ke nilai ini tiap selection berubah; operator boleh menurunkan
// tapi tidak boleh melebihi nilai ini.
func SuggestedAmount(led FeeLedger, sel Selection) decimal.Decimal {
	total := decimal.Zero
	for _, sl := range sel.SelectedLines(led) {
		total = total.Add(sl.Line.DueAmount())
	}
	return total
}

// ClampAmount membatasi override operator agar tidak melampaui total due.
func ClampAmount(entered, suggested decimal.Decimal) decimal.Decimal {
	if entered.GreaterThan(suggested) {
		return suggested
	}
	if entered.IsNegative() {
		return decimal.Zero
	}
	return entered
}
