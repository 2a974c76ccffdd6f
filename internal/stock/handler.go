package stock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateMaterialRequest struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Notes string `json:"notes"`
}

type UpdateMaterialRequest struct {
	Name  *string `json:"name"`
	Unit  *string `json:"unit"`
	Notes *string `json:"notes"`
}

type MaterialResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"current_stock"`
	Notes        string  `json:"notes"`
}

type CreateMovementRequest struct {
	MaterialID uint    `json:"material_id"`
	Type       string  `json:"type"` // "in" | "out"
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	ProjectID  *uint   `json:"project_id"`
	Date       string  `json:"date"` // "2025-12-09", boşsa bugün
	Note       string  `json:"note"`
}

type MovementResponse struct {
	ID         uint    `json:"id"`
	MaterialID uint    `json:"material_id"`
	Type       string  `json:"type"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	ProjectID  *uint   `json:"project_id"`
	Date       string  `json:"date"`
	Note       string  `json:"note"`
}

func toMaterialResponse(m *models.Material) MaterialResponse {
	return MaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		Unit:         m.Unit,
		CurrentStock: m.CurrentStock,
		Notes:        m.Notes,
	}
}

func toMovementResponse(m *models.StockMovement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		Type:       string(m.Type),
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		ProjectID:  m.ProjectID,
		Date:       m.Date.Format("2006-01-02"),
		Note:       m.Note,
	}
}

// POST /api/materials
func CreateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Unit) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim ve birim zorunlu")
		}

		material := models.Material{
			Name:  strings.TrimSpace(body.Name),
			Unit:  strings.TrimSpace(body.Unit),
			Notes: body.Notes,
		}

		if err := database.DB.Create(&material).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toMaterialResponse(&material))
	}
}

// GET /api/materials
func ListMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var materials []models.Material
		if err := database.DB.Order("name asc").Find(&materials).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzemeler listelenemedi")
		}

		resp := make([]MaterialResponse, 0, len(materials))
		for i := range materials {
			resp = append(resp, toMaterialResponse(&materials[i]))
		}

		return c.JSON(resp)
	}
}

// PUT /api/materials/:id
func UpdateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz malzeme ID")
		}

		var material models.Material
		if err := database.DB.First(&material, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Malzeme bulunamadı")
		}

		var body UpdateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		// current_stock burada güncellenmez; yalnızca hareketler değiştirir
		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			material.Name = strings.TrimSpace(*body.Name)
		}
		if body.Unit != nil {
			if strings.TrimSpace(*body.Unit) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Birim boş olamaz")
			}
			material.Unit = strings.TrimSpace(*body.Unit)
		}
		if body.Notes != nil {
			material.Notes = *body.Notes
		}

		if err := database.DB.Save(&material).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme güncellenemedi")
		}

		return c.JSON(toMaterialResponse(&material))
	}
}

// DELETE /api/materials/:id
func DeleteMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz malzeme ID")
		}

		ok, err := DeleteMaterial(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme silinemedi")
		}

		return c.JSON(fiber.Map{"success": ok})
	}
}

// POST /api/stock-movements
func CreateMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.MaterialID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "material_id zorunlu")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Miktar 0'dan büyük olmalı")
		}
		if body.Type != string(models.StockMovementIn) && body.Type != string(models.StockMovementOut) {
			return fiber.NewError(fiber.StatusBadRequest, "type 'in' veya 'out' olmalı")
		}

		var date time.Time
		if body.Date == "" {
			now := time.Now()
			date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		} else {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			date = d
		}

		mov, err := CreateMovement(CreateMovementInput{
			MaterialID: body.MaterialID,
			Type:       models.StockMovementType(body.Type),
			Quantity:   body.Quantity,
			UnitPrice:  body.UnitPrice,
			ProjectID:  body.ProjectID,
			Date:       date,
			Note:       body.Note,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Malzeme bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
	}
}

// GET /api/stock-movements?material_id=&from=&to=
func ListMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.StockMovement{})

		if s := c.Query("material_id"); s != "" {
			var mid uint
			if _, err := fmt.Sscan(s, &mid); err != nil || mid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "material_id geçersiz")
			}
			dbq = dbq.Where("material_id = ?", mid)
		}
		if s := c.Query("from"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("date >= ?", d)
		}
		if s := c.Query("to"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("date <= ?", d)
		}

		var movs []models.StockMovement
		if err := dbq.Order("date desc, id desc").Find(&movs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		resp := make([]MovementResponse, 0, len(movs))
		for i := range movs {
			resp = append(resp, toMovementResponse(&movs[i]))
		}

		return c.JSON(resp)
	}
}

// DELETE /api/stock-movements/:id
func DeleteMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hareket ID")
		}

		ok, err := DeleteMovement(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket silinemedi")
		}

		return c.JSON(fiber.Map{"success": ok})
	}
}
