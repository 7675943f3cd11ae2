package controller

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	dto "schoolfeesku_backend/internals/features/finance/fees/dto"
	model "schoolfeesku_backend/internals/features/finance/fees/model"
	service "schoolfeesku_backend/internals/features/finance/fees/service"
	helper "schoolfeesku_backend/internals/helpers"
)

type FeePreviewController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFeePreviewController(db *gorm.DB) *FeePreviewController {
	return &FeePreviewController{DB: db, Validator: validator.New()}
}

/* ======================= FETCH + JOIN ======================= */

// fetchLedger mengambil fee preview & fee structure paralel lalu join
// lewat normalizer. Dua-duanya harus sukses; failure pertama menang.
func (h *FeePreviewController) fetchLedger(
	ctx context.Context,
	studentYearID, schoolYearID uuid.UUID,
	yearLevel *string,
	monthFilter string,
) (service.FeeLedger, error) {
	var (
		preview    dto.FeePreviewResponse
		structures []dto.FeeStructureRef
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := h.loadStudentFees(gctx, studentYearID, schoolYearID, monthFilter)
		if err != nil {
			return err
		}
		preview = buildPreview(rows)
		return nil
	})

	g.Go(func() error {
		db := h.DB.WithContext(gctx).
			Where("fee_structure_school_year_id = ?", schoolYearID)
		if yearLevel != nil && *yearLevel != "" {
			db = db.Where("fee_structure_year_level = ?", *yearLevel)
		}
		var rows []model.FeeStructureModel
		if err := db.Order("fee_structure_fee_type ASC").Find(&rows).Error; err != nil {
			return err
		}
		structures = dto.StructureRefsFromModels(rows)
		return nil
	})

	if err := g.Wait(); err != nil {
		// normalizer tidak pernah dilewati error: ledger kosong + kondisi
		// "fees unavailable" ke caller
		return service.FeeLedger{}, err
	}

	return service.NormalizeLedger(preview, structures), nil
}

func (h *FeePreviewController) loadStudentFees(
	ctx context.Context,
	studentYearID, schoolYearID uuid.UUID,
	monthFilter string,
) ([]model.StudentFeeModel, error) {
	db := h.DB.WithContext(ctx).
		Where("student_fee_student_year_id = ? AND student_fee_school_year_id = ?", studentYearID, schoolYearID)
	if monthFilter != "" {
		db = db.Where("student_fee_month = ?", monthFilter)
	}

	var rows []model.StudentFeeModel
	if err := db.
		Order("student_fee_month_id ASC NULLS LAST, student_fee_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// buildPreview menyusun wire shape fee-preview dari baris DB,
// urutan bulan mengikuti urutan query.
func buildPreview(rows []model.StudentFeeModel) dto.FeePreviewResponse {
	var preview dto.FeePreviewResponse
	idx := map[string]int{}

	for _, r := range rows {
		i, ok := idx[r.StudentFeeMonth]
		if !ok {
			var monthID *int
			if r.StudentFeeMonthID != nil {
				v := int(*r.StudentFeeMonthID)
				monthID = &v
			}
			preview = append(preview, dto.FeePreviewMonth{Month: r.StudentFeeMonth, MonthID: monthID})
			i = len(preview) - 1
			idx[r.StudentFeeMonth] = i
		}

		var structID *string
		if r.StudentFeeStructureID != nil {
			s := r.StudentFeeStructureID.String()
			structID = &s
		}
		preview[i].Fees = append(preview[i].Fees, dto.FeePreviewFee{
			FeeID:          r.StudentFeeID.String(),
			FeeType:        r.StudentFeeType,
			OriginalAmount: dto.NewAmount(r.StudentFeeOriginalAmount),
			PaidAmount:     dto.NewAmount(r.StudentFeePaidAmount),
			LateFee:        dto.NewAmount(r.StudentFeeLateFee),
			Status:         r.StudentFeeStatus,
			FeeStructureID: structID,
		})
	}

	return preview
}

/* ======================= HANDLERS ======================= */

// GET /fees/preview/student/:studentYearId?school_year_id=...&year_level=...&month=...
func (h *FeePreviewController) GetLedgerByStudent(c *fiber.Ctx) error {
	studentYearID, err := uuid.Parse(c.Params("studentYearId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "studentYearId tidak valid")
	}
	schoolYearID, err := uuid.Parse(c.Query("school_year_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "school_year_id wajib diisi")
	}
	var yearLevel *string
	if v := c.Query("year_level"); v != "" {
		yearLevel = &v
	}

	led, err := h.fetchLedger(c.Context(), studentYearID, schoolYearID, yearLevel, c.Query("month"))
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Data tagihan belum tersedia, silakan coba lagi")
	}

	return helper.JsonOK(c, "OK", ledgerResponse(led))
}

// GET /fees/preview/class/:classId?school_year_id=...
// Feed mentah per kelas: breakdown bulanan tiap siswa (array shape).
func (h *FeePreviewController) GetPreviewByClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "classId tidak valid")
	}
	schoolYearID, err := uuid.Parse(c.Query("school_year_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "school_year_id wajib diisi")
	}

	var rows []model.StudentFeeModel
	if err := h.DB.WithContext(c.Context()).
		Where("student_fee_class_id = ? AND student_fee_school_year_id = ?", classID, schoolYearID).
		Order("student_fee_student_year_id ASC, student_fee_month_id ASC NULLS LAST, student_fee_created_at ASC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Data tagihan belum tersedia, silakan coba lagi")
	}

	out := make([]dto.ClassStudentPreview, 0)
	var current uuid.UUID
	var bucket []model.StudentFeeModel
	flush := func() {
		if len(bucket) == 0 {
			return
		}
		out = append(out, dto.ClassStudentPreview{
			StudentYearID: current,
			Months:        buildPreview(bucket),
		})
		bucket = bucket[:0]
	}
	for _, r := range rows {
		if r.StudentFeeStudentYearID != current {
			flush()
			current = r.StudentFeeStudentYearID
		}
		bucket = append(bucket, r)
	}
	flush()

	return helper.JsonOK(c, "OK", out)
}

// POST /fees/allocate: preview alokasi untuk panel summary.
func (h *FeePreviewController) AllocatePreview(c *fiber.Ctx) error {
	var req dto.AllocatePreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	led, err := h.fetchLedger(c.Context(), req.StudentYearID, req.SchoolYearID, nil, "")
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Data tagihan belum tersedia, silakan coba lagi")
	}

	sel := service.NewSelection()
	for _, k := range req.Selected {
		sel.SelectLine(k.Month, k.FeeID)
	}

	suggested := service.SuggestedAmount(led, sel)
	amount := service.ClampAmount(req.Amount.Decimal, suggested)
	res := service.Allocate(led, sel, amount)

	return helper.JsonOK(c, "OK", allocationResponse(res, suggested))
}

/* ======================= MAPPERS ======================= */

func ledgerResponse(led service.FeeLedger) dto.FeeLedgerResponse {
	out := dto.FeeLedgerResponse{Months: make([]dto.MonthGroupView, 0, len(led.Months))}
	for _, mg := range led.Months {
		view := dto.MonthGroupView{
			Month:   mg.Month,
			MonthID: mg.MonthID,
			Fees:    make([]dto.FeeLineView, 0, len(mg.Fees)),
		}
		for _, f := range mg.Fees {
			view.Fees = append(view.Fees, dto.FeeLineView{
				FeeID:          f.FeeID,
				FeeType:        f.FeeType,
				OriginalAmount: f.OriginalAmount,
				PaidAmount:     f.PaidAmount,
				LateFee:        f.LateFee,
				DueAmount:      f.DueAmount(),
				Status:         string(f.Status),
				FeeStructureID: f.FeeStructureID,
			})
			out.SuggestedAmount = out.SuggestedAmount.Add(f.DueAmount())
		}
		out.Months = append(out.Months, view)
	}
	return out
}

func allocationResponse(res service.AllocationResult, suggested decimal.Decimal) dto.AllocationResponse {
	out := dto.AllocationResponse{
		Allocations:       make([]dto.AllocationEntryView, 0, len(res.Allocations)),
		BaseAmount:        res.BaseAmount,
		PaidAlreadyAmount: res.PaidAlreadyAmount,
		DueAmount:         res.DueAmount,
		Remainder:         res.Remainder,
		SuggestedAmount:   suggested,
	}
	for _, a := range res.Allocations {
		out.Allocations = append(out.Allocations, dto.AllocationEntryView{
			FeeReferenceKind: string(a.FeeReferenceKind),
			FeeReferenceID:   a.FeeReferenceID,
			FeeType:          a.FeeType,
			Month:            a.Month,
			MonthID:          a.MonthID,
			Due:              a.Due,
			Amount:           a.Amount,
		})
	}
	return out
}
