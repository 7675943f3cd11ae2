package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feesdto "schoolfeesku_backend/internals/features/finance/fees/dto"
	dto "schoolfeesku_backend/internals/features/finance/payments/dto"
	model "schoolfeesku_backend/internals/features/finance/payments/model"
)

// Dua wire format (offline nested vs online flat) harus menghasilkan
// view model yang sama untuk pembayaran yang sama.
func TestReceiptAdapters_ShapeEquivalence(t *testing.T) {
	id := uuid.New()
	paidAt := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	offline := dto.OfflineConfirmation{
		ReceiptNo: 42,
		PaymentID: id,
		PaidAt:    &paidAt,
		Data: []dto.OfflineFeeRecord{
			{FeeType: "Tuition Fee", PaidAmount: feesdto.AmountFromFloat(500), MonthName: "April"},
		},
		TotalAmountPaid: feesdto.AmountFromFloat(500),
	}
	online := dto.OnlineConfirmation{
		ReceiptNo: 42,
		PaymentID: id,
		PaidAt:    &paidAt,
		Payments: []dto.OnlinePaymentRecord{
			{FeeType: "Tuition Fee", Month: "April", Amount: feesdto.AmountFromFloat(500)},
		},
	}

	vmOff := ReceiptFromOffline(offline)
	vmOn := ReceiptFromOnline(online)

	assert.True(t, vmOff.TotalPaid.Equal(vmOn.TotalPaid))
	require.Len(t, vmOff.Lines, 1)
	require.Len(t, vmOn.Lines, 1)
	assert.Equal(t, vmOff.Lines[0].FeeType, vmOn.Lines[0].FeeType)
	assert.True(t, vmOff.Lines[0].Amount.Equal(vmOn.Lines[0].Amount))
	assert.Equal(t, vmOff.ReceiptNo, vmOn.ReceiptNo)
}

func TestReceiptFromOnline_TotalSummedFromLines(t *testing.T) {
	online := dto.OnlineConfirmation{
		Payments: []dto.OnlinePaymentRecord{
			{FeeType: "Tuition Fee", Amount: feesdto.AmountFromFloat(1000)},
			{FeeType: "Transport Fee", Amount: feesdto.AmountFromFloat(200)},
		},
	}

	vm := ReceiptFromOnline(online)
	assert.True(t, vm.TotalPaid.Equal(decimal.NewFromInt(1200)))
}

func TestReceiptFromPayment(t *testing.T) {
	paidAt := time.Now()
	p := model.PaymentModel{
		PaymentID:        uuid.New(),
		PaymentReceiptNo: 7,
		PaymentMethod:    model.PaymentMethodCash,
		PaymentAmount:    decimal.NewFromInt(750),
		PaymentPaidAt:    &paidAt,
		PaymentItems: []model.PaymentItemModel{
			{PaymentItemFeeType: "Tuition Fee", PaymentItemMonth: "April", PaymentItemAmount: decimal.NewFromInt(500)},
			{PaymentItemFeeType: "Library Fee", PaymentItemMonth: "April", PaymentItemAmount: decimal.NewFromInt(250)},
		},
	}

	vm := ReceiptFromPayment(p)
	assert.Equal(t, int64(7), vm.ReceiptNo)
	assert.True(t, vm.TotalPaid.Equal(decimal.NewFromInt(750)))
	require.Len(t, vm.Lines, 2)

	resp := vm.ToResponse()
	assert.Equal(t, int64(7), resp.ReceiptNo)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "Tuition Fee", resp.Lines[0].FeeType)
}
