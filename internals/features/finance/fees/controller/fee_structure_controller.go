package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolfeesku_backend/internals/features/finance/fees/dto"
	model "schoolfeesku_backend/internals/features/finance/fees/model"
	helper "schoolfeesku_backend/internals/helpers"
)

type FeeStructureController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFeeStructureController(db *gorm.DB) *FeeStructureController {
	return &FeeStructureController{DB: db, Validator: validator.New()}
}

/* ======================== LIST ======================== */
// GET /fee-structures?school_year_id=...&year_level=...
// Response ini adalah fee-structure feed yang dikonsumsi layar pembayaran.
func (h *FeeStructureController) List(c *fiber.Ctx) error {
	var q dto.ListFeeStructureQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
	if err := h.Validator.Struct(q); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := h.DB.WithContext(c.Context()).
		Where("fee_structure_school_year_id = ?", q.SchoolYearID)
	if q.YearLevel != nil && *q.YearLevel != "" {
		db = db.Where("fee_structure_year_level = ?", *q.YearLevel)
	}

	var rows []model.FeeStructureModel
	if err := db.
		Order("fee_structure_fee_type ASC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", dto.FromFeeStructureModels(rows))
}

/* ======================== CREATE ======================= */
// POST /fee-structures
func (h *FeeStructureController) Create(c *fiber.Ctx) error {
	var req dto.CreateFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.FeeStructureAmount.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Amount tidak boleh negatif")
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat fee structure")
	}

	return helper.JsonCreated(c, "Fee structure berhasil dibuat", dto.FromFeeStructureModel(*m))
}

/* ======================== UPDATE ======================= */
// PATCH /fee-structures/:id
func (h *FeeStructureController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.FeeStructureModel
	if err := h.DB.WithContext(c.Context()).
		First(&m, "fee_structure_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fee structure tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var req dto.UpdateFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	req.ApplyTo(&m)
	if err := h.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui fee structure")
	}

	return helper.JsonOK(c, "Fee structure berhasil diperbarui", dto.FromFeeStructureModel(m))
}

/* ======================== DELETE ======================= */
// DELETE /fee-structures/:id
func (h *FeeStructureController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := h.DB.WithContext(c.Context()).
		Delete(&model.FeeStructureModel{}, "fee_structure_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus fee structure")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Fee structure tidak ditemukan")
	}

	return helper.JsonOK(c, "Fee structure berhasil dihapus", nil)
}
