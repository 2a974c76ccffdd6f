package company

import (
	"errors"
	"fmt"
	"strings"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"
	"insaat-backend/internal/trash"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateCompanyRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"` // "customer" | "supplier" | "subcontractor"
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	TaxNumber string `json:"tax_number"`
	Notes     string `json:"notes"`
}

type UpdateCompanyRequest struct {
	Name      *string `json:"name"`
	Type      *string `json:"type"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	TaxNumber *string `json:"tax_number"`
	Notes     *string `json:"notes"`
}

func validCompanyType(s string) bool {
	switch models.CompanyType(s) {
	case models.CompanyTypeCustomer, models.CompanyTypeSupplier, models.CompanyTypeSubcontractor:
		return true
	}
	return false
}

// POST /api/companies
func CreateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu")
		}
		if !validCompanyType(body.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "type 'customer', 'supplier' veya 'subcontractor' olmalı")
		}

		company := models.Company{
			Name:      strings.TrimSpace(body.Name),
			Type:      models.CompanyType(body.Type),
			Phone:     body.Phone,
			Email:     body.Email,
			Address:   body.Address,
			TaxNumber: body.TaxNumber,
			Notes:     body.Notes,
		}

		if err := database.DB.Create(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(company)
	}
}

// GET /api/companies?type=customer
func ListCompaniesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Company{})

		if t := c.Query("type"); t != "" {
			if !validCompanyType(t) {
				return fiber.NewError(fiber.StatusBadRequest, "type geçersiz")
			}
			dbq = dbq.Where("type = ?", t)
		}

		var companies []models.Company
		if err := dbq.Order("name asc").Find(&companies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cariler listelenemedi")
		}

		return c.JSON(companies)
	}
}

// GET /api/companies/:id
func GetCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var company models.Company
		if err := database.DB.First(&company, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cari bulunamadı")
		}

		return c.JSON(company)
	}
}

// PUT /api/companies/:id
func UpdateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var company models.Company
		if err := database.DB.First(&company, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cari bulunamadı")
		}

		var body UpdateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			company.Name = strings.TrimSpace(*body.Name)
		}
		if body.Type != nil {
			if !validCompanyType(*body.Type) {
				return fiber.NewError(fiber.StatusBadRequest, "type geçersiz")
			}
			company.Type = models.CompanyType(*body.Type)
		}
		if body.Phone != nil {
			company.Phone = *body.Phone
		}
		if body.Email != nil {
			company.Email = *body.Email
		}
		if body.Address != nil {
			company.Address = *body.Address
		}
		if body.TaxNumber != nil {
			company.TaxNumber = *body.TaxNumber
		}
		if body.Notes != nil {
			company.Notes = *body.Notes
		}

		if err := database.DB.Save(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari güncellenemedi")
		}

		return c.JSON(company)
	}
}

// DELETE /api/companies/:id
// İşlem geçmişi silinmez; cari aynı ID ile geri yüklendiğinde geçmiş
// referanslar tekrar çözülür.
func DeleteCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz cari ID")
		}

		var company models.Company
		if err := database.DB.First(&company, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(fiber.Map{"success": false})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Cari okunamadı")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := trash.Snapshot(tx, models.TrashTypeCompany, &company); err != nil {
				return err
			}
			return tx.Delete(&models.Company{}, "id = ?", company.ID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari silinemedi")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
