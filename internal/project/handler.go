package project

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"
	"insaat-backend/internal/trash"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name      string  `json:"name"`
	CompanyID *uint   `json:"company_id"`
	Status    string  `json:"status"` // active / completed / cancelled, boşsa active
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Budget    float64 `json:"budget"`
	Notes     string  `json:"notes"`
}

type UpdateProjectRequest struct {
	Name      *string  `json:"name"`
	CompanyID *uint    `json:"company_id"`
	Status    *string  `json:"status"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Budget    *float64 `json:"budget"`
	Notes     *string  `json:"notes"`
}

func validStatus(s string) bool {
	return s == "active" || s == "completed" || s == "cancelled"
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// POST /api/projects
func CreateProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu")
		}

		status := body.Status
		if status == "" {
			status = "active"
		}
		if !validStatus(status) {
			return fiber.NewError(fiber.StatusBadRequest, "status 'active', 'completed' veya 'cancelled' olmalı")
		}

		startDate, err := parseDatePtr(body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date formatı 'YYYY-MM-DD' olmalı")
		}
		endDate, err := parseDatePtr(body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_date formatı 'YYYY-MM-DD' olmalı")
		}

		project := models.Project{
			Name:      strings.TrimSpace(body.Name),
			CompanyID: body.CompanyID,
			Status:    status,
			StartDate: startDate,
			EndDate:   endDate,
			Budget:    body.Budget,
			Notes:     body.Notes,
		}

		if err := database.DB.Create(&project).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(project)
	}
}

// GET /api/projects?status=active
func ListProjectsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Project{})

		if s := c.Query("status"); s != "" {
			if !validStatus(s) {
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz")
			}
			dbq = dbq.Where("status = ?", s)
		}

		var projects []models.Project
		if err := dbq.Order("name asc").Find(&projects).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Projeler listelenemedi")
		}

		return c.JSON(projects)
	}
}

// GET /api/projects/:id
func GetProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var project models.Project
		if err := database.DB.First(&project, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
		}

		return c.JSON(project)
	}
}

// PUT /api/projects/:id
func UpdateProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var project models.Project
		if err := database.DB.First(&project, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
		}

		var body UpdateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			project.Name = strings.TrimSpace(*body.Name)
		}
		if body.CompanyID != nil {
			project.CompanyID = body.CompanyID
		}
		if body.Status != nil {
			if !validStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz")
			}
			project.Status = *body.Status
		}
		if body.StartDate != nil {
			d, err := parseDatePtr(body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date formatı 'YYYY-MM-DD' olmalı")
			}
			project.StartDate = d
		}
		if body.EndDate != nil {
			d, err := parseDatePtr(body.EndDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date formatı 'YYYY-MM-DD' olmalı")
			}
			project.EndDate = d
		}
		if body.Budget != nil {
			project.Budget = *body.Budget
		}
		if body.Notes != nil {
			project.Notes = *body.Notes
		}

		if err := database.DB.Save(&project).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje güncellenemedi")
		}

		return c.JSON(project)
	}
}

// DELETE /api/projects/:id
func DeleteProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz proje ID")
		}

		var project models.Project
		if err := database.DB.First(&project, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(fiber.Map{"success": false})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Proje okunamadı")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := trash.Snapshot(tx, models.TrashTypeProject, &project); err != nil {
				return err
			}
			return tx.Delete(&models.Project{}, "id = ?", project.ID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje silinemedi")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
