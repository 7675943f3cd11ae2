package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

/* =========================================================
   Domain types: FeeLine / MonthGroup / FeeLedger
========================================================= */

type FeeStatus string

const (
	FeeStatusPaid    FeeStatus = "paid"
	FeeStatusPartial FeeStatus = "partial"
	FeeStatusPending FeeStatus = "pending"
)

// FeeReferenceKind membedakan namespace id yang dikirim ke backend:
// id dari fee_structures vs id baris fee itu sendiri.
type FeeReferenceKind string

const (
	FeeReferenceStructure FeeReferenceKind = "structure"
	FeeReferenceFeeLine   FeeReferenceKind = "fee_line"
)

type FeeLine struct {
	FeeID          string
	FeeType        string
	OriginalAmount decimal.Decimal
	PaidAmount     decimal.Decimal
	LateFee        decimal.Decimal
	FeeStructureID *string
	Status         FeeStatus
}

// DueAmount = max(original - paid, 0). Data anomali (paid > original)
// di-clamp, bukan ditolak.
func (l FeeLine) DueAmount() decimal.Decimal {
	due := l.OriginalAmount.Sub(l.PaidAmount)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// Reference mengembalikan id yang dipakai payload pembayaran:
// fee_structure_id bila ada, fallback ke fee_id.
func (l FeeLine) Reference() (FeeReferenceKind, string) {
	if l.FeeStructureID != nil && *l.FeeStructureID != "" {
		return FeeReferenceStructure, *l.FeeStructureID
	}
	return FeeReferenceFeeLine, l.FeeID
}

type MonthGroup struct {
	Month   string
	MonthID *int
	Fees    []FeeLine
}

// FeeLedger dibangun ulang penuh tiap fetch; tidak pernah dimutasi in place.
type FeeLedger struct {
	Months []MonthGroup
}

func (led FeeLedger) Line(month, feeID string) *FeeLine {
	for mi := range led.Months {
		if led.Months[mi].Month != month {
			continue
		}
		for fi := range led.Months[mi].Fees {
			if led.Months[mi].Fees[fi].FeeID == feeID {
				return &led.Months[mi].Fees[fi]
			}
		}
	}
	return nil
}

/* ================== Month table ================== */

var monthNumbers = map[string]int{
	"january":   1,
	"february":  2,
	"march":     3,
	"april":     4,
	"may":       5,
	"june":      6,
	"july":      7,
	"august":    8,
	"september": 9,
	"october":   10,
	"november":  11,
	"december":  12,
}

// MonthNumber resolve nama bulan (English) ke 1..12; nil bila tidak dikenal.
func MonthNumber(name string) *int {
	n, ok := monthNumbers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return &n
}
