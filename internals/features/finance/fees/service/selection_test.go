package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerFixture() FeeLedger {
	return FeeLedger{Months: []MonthGroup{
		{
			Month: "April",
			Fees: []FeeLine{
				{FeeID: "f1", FeeType: "Tuition Fee", OriginalAmount: decimal.NewFromInt(1000), Status: FeeStatusPending},
				{FeeID: "f2", FeeType: "Transport Fee", OriginalAmount: decimal.NewFromInt(200), PaidAmount: decimal.NewFromInt(200), Status: FeeStatusPaid},
				{FeeID: "f3", FeeType: "Library Fee", OriginalAmount: decimal.NewFromInt(50), Status: FeeStatusPending},
			},
		},
		{
			Month: "May",
			Fees: []FeeLine{
				{FeeID: "f4", FeeType: "Tuition Fee", OriginalAmount: decimal.NewFromInt(1000), PaidAmount: decimal.NewFromInt(400), Status: FeeStatusPartial},
			},
		},
	}}
}

func TestSelection_ToggleMonthSkipsPaid(t *testing.T) {
	led := ledgerFixture()
	sel := NewSelection()

	sel.ToggleMonth(led.Months[0], true)

	assert.True(t, sel.IsSelected("April", "f1"))
	assert.False(t, sel.IsSelected("April", "f2"))
	assert.True(t, sel.IsSelected("April", "f3"))
	assert.Equal(t, 2, sel.Len())

	sel.ToggleMonth(led.Months[0], false)
	assert.Equal(t, 0, sel.Len())
}

func TestSelection_IsMonthFullySelected(t *testing.T) {
	led := ledgerFixture()
	sel := NewSelection()

	assert.False(t, sel.IsMonthFullySelected(led.Months[0]))

	sel.SelectLine("April", "f1")
	assert.False(t, sel.IsMonthFullySelected(led.Months[0]))

	// baris paid tidak dihitung
	sel.SelectLine("April", "f3")
	assert.True(t, sel.IsMonthFullySelected(led.Months[0]))
}

func TestSelection_AllPaidMonthVacuouslyFull(t *testing.T) {
	mg := MonthGroup{Month: "March", Fees: []FeeLine{
		{FeeID: "p1", Status: FeeStatusPaid},
	}}
	sel := NewSelection()
	assert.True(t, sel.IsMonthFullySelected(mg))
}

func TestSelection_KeyedByMonthAndFee(t *testing.T) {
	sel := NewSelection()
	sel.SelectLine("April", "f1")

	// fee id sama di bulan lain bukan member
	assert.False(t, sel.IsSelected("May", "f1"))
}

func TestSelection_SelectedLinesFollowLedgerOrder(t *testing.T) {
	led := ledgerFixture()
	sel := NewSelection()
	sel.SelectLine("May", "f4")
	sel.SelectLine("April", "f3")
	sel.SelectLine("April", "f1")

	lines := sel.SelectedLines(led)
	require.Len(t, lines, 3)
	assert.Equal(t, "f1", lines[0].Line.FeeID)
	assert.Equal(t, "f3", lines[1].Line.FeeID)
	assert.Equal(t, "f4", lines[2].Line.FeeID)
}

func TestSelection_Clear(t *testing.T) {
	sel := NewSelection()
	sel.SelectLine("April", "f1")
	sel.SelectLine("May", "f4")

	sel.Clear()
	assert.Equal(t, 0, sel.Len())
}
