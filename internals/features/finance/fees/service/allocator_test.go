package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func allocLedger(dues ...int64) (FeeLedger, Selection) {
	led := FeeLedger{Months: []MonthGroup{{Month: "April"}}}
	sel := NewSelection()
	for i, d := range dues {
		id := string(rune('a' + i))
		led.Months[0].Fees = append(led.Months[0].Fees, FeeLine{
			FeeID:          id,
			FeeType:        "Fee " + id,
			OriginalAmount: decimal.NewFromInt(d),
			Status:         FeeStatusPending,
		})
		sel.SelectLine("April", id)
	}
	return led, sel
}

func TestAllocate_GreedyHighestDueFirst(t *testing.T) {
	led, sel := allocLedger(50, 20, 80)

	res := Allocate(led, sel, dec(90))

	require.Len(t, res.Allocations, 3)
	// urutan proses: due terbesar dulu
	assert.Equal(t, "c", res.Allocations[0].FeeReferenceID)
	assert.True(t, res.Allocations[0].Amount.Equal(dec(80)))
	assert.Equal(t, "a", res.Allocations[1].FeeReferenceID)
	assert.True(t, res.Allocations[1].Amount.Equal(dec(10)))
	assert.Equal(t, "b", res.Allocations[2].FeeReferenceID)
	assert.True(t, res.Allocations[2].Amount.IsZero())

	assert.True(t, res.Remainder.IsZero())
}

func TestAllocate_Conservation(t *testing.T) {
	led, sel := allocLedger(50, 20, 80)

	for _, total := range []int64{0, 1, 90, 150, 151, 9999} {
		res := Allocate(led, sel, dec(total))

		sum := decimal.Zero
		for _, a := range res.Allocations {
			sum = sum.Add(a.Amount)
			assert.True(t, a.Amount.LessThanOrEqual(a.Due), "alokasi tidak boleh melebihi due")
			assert.False(t, a.Amount.IsNegative())
		}
		assert.True(t, sum.Add(res.Remainder).Equal(dec(total)),
			"total=%d: sum+remainder harus sama dengan input", total)
	}
}

func TestAllocate_OverflowReportedAsRemainder(t *testing.T) {
	led, sel := allocLedger(100)

	res := Allocate(led, sel, dec(130))
	require.Len(t, res.Allocations, 1)
	assert.True(t, res.Allocations[0].Amount.Equal(dec(100)))
	assert.True(t, res.Remainder.Equal(dec(30)))
}

func TestAllocate_EmptySelection(t *testing.T) {
	led, _ := allocLedger(100)
	res := Allocate(led, NewSelection(), dec(500))

	assert.Empty(t, res.Allocations)
	assert.True(t, res.Remainder.Equal(dec(500)))
	assert.True(t, res.DueAmount.IsZero())
}

func TestAllocate_NegativeAmountTreatedAsZero(t *testing.T) {
	led, sel := allocLedger(100)
	res := Allocate(led, sel, dec(-25))

	require.Len(t, res.Allocations, 1)
	assert.True(t, res.Allocations[0].Amount.IsZero())
	assert.True(t, res.Remainder.IsZero())
}

func TestAllocate_EqualDuesKeepLedgerOrder(t *testing.T) {
	led, sel := allocLedger(40, 40, 40)
	res := Allocate(led, sel, dec(50))

	require.Len(t, res.Allocations, 3)
	assert.Equal(t, "a", res.Allocations[0].FeeReferenceID)
	assert.True(t, res.Allocations[0].Amount.Equal(dec(40)))
	assert.Equal(t, "b", res.Allocations[1].FeeReferenceID)
	assert.True(t, res.Allocations[1].Amount.Equal(dec(10)))
}

func TestAllocate_SummaryComputedOverSelection(t *testing.T) {
	led := FeeLedger{Months: []MonthGroup{{
		Month: "April",
		Fees: []FeeLine{
			{FeeID: "f1", OriginalAmount: dec(1000), PaidAmount: dec(400), Status: FeeStatusPartial},
			{FeeID: "f2", OriginalAmount: dec(200), Status: FeeStatusPending},
		},
	}}}
	sel := NewSelection()
	sel.SelectLine("April", "f1")
	sel.SelectLine("April", "f2")

	res := Allocate(led, sel, dec(100))

	assert.True(t, res.BaseAmount.Equal(dec(1200)))
	assert.True(t, res.PaidAlreadyAmount.Equal(dec(400)))
	assert.True(t, res.DueAmount.Equal(dec(800)))
}

func TestSuggestedAmountAndClamp(t *testing.T) {
	led, sel := allocLedger(50, 20, 80)

	suggested := SuggestedAmount(led, sel)
	assert.True(t, suggested.Equal(dec(150)))

	assert.True(t, ClampAmount(dec(200), suggested).Equal(dec(150)))
	assert.True(t, ClampAmount(dec(90), suggested).Equal(dec(90)))
	assert.True(t, ClampAmount(dec(-5), suggested).IsZero())
}

// Skenario lengkap: dua tagihan pending dibayar penuh sekali jalan.
func TestAllocate_FullPaymentScenario(t *testing.T) {
	led := FeeLedger{Months: []MonthGroup{{
		Month: "April",
		Fees: []FeeLine{
			{FeeID: "t1", FeeType: "Tuition Fee", OriginalAmount: dec(1000), Status: FeeStatusPending},
			{FeeID: "t2", FeeType: "Transport Fee", OriginalAmount: dec(200), Status: FeeStatusPending},
		},
	}}}
	sel := NewSelection()
	sel.ToggleMonth(led.Months[0], true)

	suggested := SuggestedAmount(led, sel)
	require.True(t, suggested.Equal(dec(1200)))

	res := Allocate(led, sel, suggested)
	require.Len(t, res.Allocations, 2)
	assert.True(t, res.Allocations[0].Amount.Equal(dec(1000)))
	assert.True(t, res.Allocations[1].Amount.Equal(dec(200)))
	assert.True(t, res.Remainder.IsZero())
}
