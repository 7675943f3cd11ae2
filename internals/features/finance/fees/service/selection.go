package service

/* =========================================================
   Selection Tracker
   - membership di-key pakai pasangan (month, feeId), bukan index,
     karena urutan baris tidak dijamin stabil antar rebuild ledger
========================================================= */

type Selection map[string]struct{}

func NewSelection() Selection { return Selection{} }

// SelectionKey membentuk composite key "{month}-{feeId}".
func SelectionKey(month, feeID string) string {
	return month + "-" + feeID
}

func (s Selection) SelectLine(month, feeID string) {
	s[SelectionKey(month, feeID)] = struct{}{}
}

func (s Selection) DeselectLine(month, feeID string) {
	delete(s, SelectionKey(month, feeID))
}

func (s Selection) IsSelected(month, feeID string) bool {
	_, ok := s[SelectionKey(month, feeID)]
	return ok
}

// ToggleMonth memilih/melepas semua baris selectable dalam satu bulan
// sekaligus. Baris status paid tidak pernah ikut di-toggle: tampil
// tercentang di UI tapi dikecualikan dari allocator.
func (s Selection) ToggleMonth(mg MonthGroup, checked bool) {
	for _, f := range mg.Fees {
		if f.Status == FeeStatusPaid {
			continue
		}
		if checked {
			s.SelectLine(mg.Month, f.FeeID)
		} else {
			s.DeselectLine(mg.Month, f.FeeID)
		}
	}
}

// IsMonthFullySelected true bila semua baris non-paid bulan itu terpilih.
// Tri-state tidak dimodelkan: bulan terpilih sebagian dianggap unchecked.
func (s Selection) IsMonthFullySelected(mg MonthGroup) bool {
	for _, f := range mg.Fees {
		if f.Status == FeeStatusPaid {
			continue
		}
		if !s.IsSelected(mg.Month, f.FeeID) {
			return false
		}
	}
	return true
}

func (s Selection) Clear() {
	for k := range s {
		delete(s, k)
	}
}

func (s Selection) Len() int { return len(s) }

// SelectedLine menyandingkan baris dengan bulannya untuk konsumsi allocator.
type SelectedLine struct {
	Month   string
	MonthID *int
	Line    FeeLine
}

// SelectedLines meng-flatten baris terpilih lintas bulan, mengikuti urutan ledger.
func (s Selection) SelectedLines(led FeeLedger) []SelectedLine {
	out := make([]SelectedLine, 0, len(s))
	for _, mg := range led.Months {
		for _, f := range mg.Fees {
			if s.IsSelected(mg.Month, f.FeeID) {
				out = append(out, SelectedLine{Month: mg.Month, MonthID: mg.MonthID, Line: f})
			}
		}
	}
	return out
}
