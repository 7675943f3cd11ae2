package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "schoolfeesku_backend/internals/features/finance/fees/dto"
)

func strp(s string) *string { return &s }

func previewFixture() dto.FeePreviewResponse {
	return dto.FeePreviewResponse{
		{
			Month: "April",
			Fees: []dto.FeePreviewFee{
				{FeeID: "f1", FeeType: "Tuition Fee", OriginalAmount: dto.AmountFromFloat(1000), PaidAmount: dto.AmountFromFloat(0), Status: "pending"},
				{FeeID: "f2", FeeType: "Transport Fee", OriginalAmount: dto.AmountFromFloat(200), PaidAmount: dto.AmountFromFloat(200), Status: "paid"},
			},
		},
		{
			Month: "Mei", // label lokal, tidak ada di tabel bulan
			Fees: []dto.FeePreviewFee{
				{FeeID: "f3", FeeType: "Tuition Fee", OriginalAmount: dto.AmountFromFloat(1000), PaidAmount: dto.AmountFromFloat(400)},
			},
		},
	}
}

func TestNormalizeLedger_OrderAndMonthID(t *testing.T) {
	led := NormalizeLedger(previewFixture(), nil)

	require.Len(t, led.Months, 2)
	assert.Equal(t, "April", led.Months[0].Month)
	require.NotNil(t, led.Months[0].MonthID)
	assert.Equal(t, 4, *led.Months[0].MonthID)

	// label di luar tabel bulan tetap tampil, tanpa id
	assert.Equal(t, "Mei", led.Months[1].Month)
	assert.Nil(t, led.Months[1].MonthID)
}

func TestNormalizeLedger_ExplicitMonthIDWins(t *testing.T) {
	seven := 7
	preview := dto.FeePreviewResponse{{Month: "April", MonthID: &seven}}
	led := NormalizeLedger(preview, nil)

	require.Len(t, led.Months, 1)
	require.NotNil(t, led.Months[0].MonthID)
	assert.Equal(t, 7, *led.Months[0].MonthID)
}

func TestNormalizeLedger_StructureResolution(t *testing.T) {
	structures := []dto.FeeStructureRef{
		{ID: "s-tuition", FeeType: "tuition fee"},
		{ID: "s-transport", FeeType: "Transport Fee"},
	}

	led := NormalizeLedger(previewFixture(), structures)

	// match case-insensitive
	line := led.Line("April", "f1")
	require.NotNil(t, line)
	require.NotNil(t, line.FeeStructureID)
	assert.Equal(t, "s-tuition", *line.FeeStructureID)

	kind, ref := line.Reference()
	assert.Equal(t, FeeReferenceStructure, kind)
	assert.Equal(t, "s-tuition", ref)
}

func TestNormalizeLedger_UnmatchedTypeFallsBackToFeeLine(t *testing.T) {
	preview := dto.FeePreviewResponse{{
		Month: "April",
		Fees:  []dto.FeePreviewFee{{FeeID: "f9", FeeType: "Library Fee", OriginalAmount: dto.AmountFromFloat(50)}},
	}}

	led := NormalizeLedger(preview, []dto.FeeStructureRef{{ID: "s1", FeeType: "Tuition Fee"}})

	line := led.Line("April", "f9")
	require.NotNil(t, line)
	assert.Nil(t, line.FeeStructureID)

	kind, ref := line.Reference()
	assert.Equal(t, FeeReferenceFeeLine, kind)
	assert.Equal(t, "f9", ref)
}

func TestNormalizeLedger_ExplicitStructureIDKept(t *testing.T) {
	preview := dto.FeePreviewResponse{{
		Month: "April",
		Fees: []dto.FeePreviewFee{
			{FeeID: "f1", FeeType: "Tuition Fee", FeeStructureID: strp("s-explicit")},
		},
	}}

	led := NormalizeLedger(preview, []dto.FeeStructureRef{{ID: "s-other", FeeType: "Tuition Fee"}})
	line := led.Line("April", "f1")
	require.NotNil(t, line)
	assert.Equal(t, "s-explicit", *line.FeeStructureID)
}

func TestNormalizeLedger_StatusDerivedWhenMissing(t *testing.T) {
	led := NormalizeLedger(previewFixture(), nil)

	assert.Equal(t, FeeStatusPending, led.Months[0].Fees[0].Status)
	assert.Equal(t, FeeStatusPaid, led.Months[0].Fees[1].Status)
	// f3 tanpa status, paid 400/1000 → partial
	assert.Equal(t, FeeStatusPartial, led.Months[1].Fees[0].Status)
}

func TestFeeLine_DueAmountClampsOverpaid(t *testing.T) {
	l := FeeLine{
		OriginalAmount: decimal.NewFromInt(100),
		PaidAmount:     decimal.NewFromInt(150),
	}
	assert.True(t, l.DueAmount().IsZero())
}

func TestNormalizeLedger_Idempotent(t *testing.T) {
	structures := []dto.FeeStructureRef{{ID: "s-tuition", FeeType: "Tuition Fee"}}
	first := NormalizeLedger(previewFixture(), structures)
	second := NormalizeLedger(previewFixture(), structures)
	assert.Equal(t, first, second)
}

func TestNormalizeLedger_EmptyInput(t *testing.T) {
	led := NormalizeLedger(nil, nil)
	assert.Empty(t, led.Months)
}
