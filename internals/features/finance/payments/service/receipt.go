package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dto "schoolfeesku_backend/internals/features/finance/payments/dto"
	model "schoolfeesku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Reconciler
   - satu receipt model, dua wire format (offline vs online)
   - renderer tidak pernah branch ke payment method setelah boundary adapter
========================================================= */

type ReceiptLine struct {
	FeeType string
	Month   string
	Amount  decimal.Decimal
}

// ReceiptViewModel tidak dimutasi setelah dibentuk; hanya dibaca renderer.
type ReceiptViewModel struct {
	ReceiptNo     int64
	PaymentID     uuid.UUID
	PaymentMethod string
	PaidAt        *time.Time
	TotalPaid     decimal.Decimal
	Lines         []ReceiptLine
}

// ReceiptFromOffline memetakan shape offline ({data:[...], total_amount_paid}).
func ReceiptFromOffline(c dto.OfflineConfirmation) ReceiptViewModel {
	vm := ReceiptViewModel{
		ReceiptNo:     c.ReceiptNo,
		PaymentID:     c.PaymentID,
		PaymentMethod: c.PaymentMethod,
		PaidAt:        c.PaidAt,
		TotalPaid:     c.TotalAmountPaid.Decimal,
		Lines:         make([]ReceiptLine, 0, len(c.Data)),
	}
	for _, r := range c.Data {
		vm.Lines = append(vm.Lines, ReceiptLine{
			FeeType: r.FeeType,
			Month:   r.MonthName,
			Amount:  r.PaidAmount.Decimal,
		})
	}
	return vm
}

// ReceiptFromOnline memetakan shape online ({payments:[...]}).
// Total dihitung dari baris karena shape ini tidak membawa agregat.
func ReceiptFromOnline(c dto.OnlineConfirmation) ReceiptViewModel {
	vm := ReceiptViewModel{
		ReceiptNo:     c.ReceiptNo,
		PaymentID:     c.PaymentID,
		PaymentMethod: c.PaymentMethod,
		PaidAt:        c.PaidAt,
		TotalPaid:     decimal.Zero,
		Lines:         make([]ReceiptLine, 0, len(c.Payments)),
	}
	for _, r := range c.Payments {
		vm.Lines = append(vm.Lines, ReceiptLine{
			FeeType: r.FeeType,
			Month:   r.Month,
			Amount:  r.Amount.Decimal,
		})
		vm.TotalPaid = vm.TotalPaid.Add(r.Amount.Decimal)
	}
	return vm
}

// ReceiptFromPayment membentuk view model langsung dari row payment + items
// (dipakai endpoint GET receipt).
func ReceiptFromPayment(p model.PaymentModel) ReceiptViewModel {
	vm := ReceiptViewModel{
		ReceiptNo:     p.PaymentReceiptNo,
		PaymentID:     p.PaymentID,
		PaymentMethod: p.PaymentMethod,
		PaidAt:        p.PaymentPaidAt,
		TotalPaid:     p.PaymentAmount,
		Lines:         make([]ReceiptLine, 0, len(p.PaymentItems)),
	}
	for _, it := range p.PaymentItems {
		vm.Lines = append(vm.Lines, ReceiptLine{
			FeeType: it.PaymentItemFeeType,
			Month:   it.PaymentItemMonth,
			Amount:  it.PaymentItemAmount,
		})
	}
	return vm
}

func (vm ReceiptViewModel) ToResponse() dto.ReceiptResponse {
	lines := make([]dto.ReceiptLineView, 0, len(vm.Lines))
	for _, l := range vm.Lines {
		lines = append(lines, dto.ReceiptLineView{FeeType: l.FeeType, Month: l.Month, Amount: l.Amount})
	}
	return dto.ReceiptResponse{
		ReceiptNo:     vm.ReceiptNo,
		PaymentID:     vm.PaymentID,
		PaymentMethod: vm.PaymentMethod,
		PaidAt:        vm.PaidAt,
		TotalPaid:     vm.TotalPaid,
		Lines:         lines,
	}
}
