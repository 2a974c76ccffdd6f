package ledger

import (
	"errors"
	"fmt"
	"time"

	"insaat-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTransactionRequest struct {
	Scope           string  `json:"scope"` // "cari" | "project" | "general"
	Type            string  `json:"type"`  // "invoice_out" | "payment_in" | "invoice_in" | "payment_out"
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	ExchangeRate    float64 `json:"exchange_rate"`
	CompanyID       *uint   `json:"company_id"`
	ProjectID       *uint   `json:"project_id"`
	CategoryID      *uint   `json:"category_id"`
	DocumentNo      string  `json:"document_no"`
	LinkedInvoiceID *uint   `json:"linked_invoice_id"`
	Description     string  `json:"description"`
	Date            string  `json:"date"` // "2025-12-09", boşsa bugün
}

type UpdateTransactionRequest struct {
	Scope           *string  `json:"scope"`
	Type            *string  `json:"type"`
	Amount          *float64 `json:"amount"`
	Currency        *string  `json:"currency"`
	ExchangeRate    *float64 `json:"exchange_rate"`
	CompanyID       *uint    `json:"company_id"`
	ProjectID       *uint    `json:"project_id"`
	CategoryID      *uint    `json:"category_id"`
	DocumentNo      *string  `json:"document_no"`
	LinkedInvoiceID *uint    `json:"linked_invoice_id"`
	Description     *string  `json:"description"`
	Date            *string  `json:"date"`
}

type TransactionResponse struct {
	ID              uint    `json:"id"`
	Scope           string  `json:"scope"`
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	ExchangeRate    float64 `json:"exchange_rate"`
	AmountTRY       float64 `json:"amount_try"`
	CompanyID       *uint   `json:"company_id"`
	ProjectID       *uint   `json:"project_id"`
	CategoryID      *uint   `json:"category_id"`
	DocumentNo      string  `json:"document_no"`
	LinkedInvoiceID *uint   `json:"linked_invoice_id"`
	Description     string  `json:"description"`
	Date            string  `json:"date"`
	CompanyName     string  `json:"company_name"`
	ProjectName     string  `json:"project_name"`
	CategoryName    string  `json:"category_name"`
	AllocatedTotal  float64 `json:"allocated_total"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toResponse(row *TransactionRow) TransactionResponse {
	return TransactionResponse{
		ID:              row.ID,
		Scope:           string(row.Scope),
		Type:            string(row.Type),
		Amount:          row.Amount,
		Currency:        row.Currency,
		ExchangeRate:    row.ExchangeRate,
		AmountTRY:       row.AmountTRY,
		CompanyID:       row.CompanyID,
		ProjectID:       row.ProjectID,
		CategoryID:      row.CategoryID,
		DocumentNo:      row.DocumentNo,
		LinkedInvoiceID: row.LinkedInvoiceID,
		Description:     row.Description,
		Date:            row.Date.Format("2006-01-02"),
		CompanyName:     row.CompanyName,
		ProjectName:     row.ProjectName,
		CategoryName:    row.CategoryName,
		AllocatedTotal:  row.AllocatedTotal,
		CreatedAt:       row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       row.UpdatedAt.Format(time.RFC3339),
	}
}

func validScope(s string) bool {
	switch models.TransactionScope(s) {
	case models.ScopeCari, models.ScopeProject, models.ScopeGeneral:
		return true
	}
	return false
}

func validType(s string) bool {
	switch models.TransactionType(s) {
	case models.TypeInvoiceOut, models.TypePaymentIn, models.TypeInvoiceIn, models.TypePaymentOut:
		return true
	}
	return false
}

// POST /api/transactions
func CreateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if !validScope(body.Scope) {
			return fiber.NewError(fiber.StatusBadRequest, "scope 'cari', 'project' veya 'general' olmalı")
		}
		if !validType(body.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "type geçersiz (invoice_out|payment_in|invoice_in|payment_out)")
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

		row, err := Create(CreateTransactionInput{
			Scope:           models.TransactionScope(body.Scope),
			Type:            models.TransactionType(body.Type),
			Amount:          body.Amount,
			Currency:        body.Currency,
			ExchangeRate:    body.ExchangeRate,
			CompanyID:       body.CompanyID,
			ProjectID:       body.ProjectID,
			CategoryID:      body.CategoryID,
			DocumentNo:      body.DocumentNo,
			LinkedInvoiceID: body.LinkedInvoiceID,
			Description:     body.Description,
			Date:            date,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidExchangeRate) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(row))
	}
}

// PUT /api/transactions/:id
func UpdateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz işlem ID")
		}

		var body UpdateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		input := UpdateTransactionInput{
			Amount:          body.Amount,
			Currency:        body.Currency,
			ExchangeRate:    body.ExchangeRate,
			CompanyID:       body.CompanyID,
			ProjectID:       body.ProjectID,
			CategoryID:      body.CategoryID,
			DocumentNo:      body.DocumentNo,
			LinkedInvoiceID: body.LinkedInvoiceID,
			Description:     body.Description,
		}

		if body.Scope != nil {
			if !validScope(*body.Scope) {
				return fiber.NewError(fiber.StatusBadRequest, "scope 'cari', 'project' veya 'general' olmalı")
			}
			scope := models.TransactionScope(*body.Scope)
			input.Scope = &scope
		}
		if body.Type != nil {
			if !validType(*body.Type) {
				return fiber.NewError(fiber.StatusBadRequest, "type geçersiz (invoice_out|payment_in|invoice_in|payment_out)")
			}
			txType := models.TransactionType(*body.Type)
			input.Type = &txType
		}
		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			input.Date = &d
		}

		row, err := Update(id, input)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "İşlem bulunamadı")
			}
			if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidExchangeRate) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem güncellenemedi")
		}

		return c.JSON(toResponse(row))
	}
}

// DELETE /api/transactions/:id
// Kayıt yoksa hata değil success:false döner; UI bunu sessizce yutar.
func DeleteTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uint
		if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz işlem ID")
		}

		ok, err := Delete(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem silinemedi")
		}

		return c.JSON(fiber.Map{"success": ok})
	}
}

// GET /api/transactions?scope=&type=&company_id=&project_id=&start_date=&end_date=&search=&limit=
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := Filters{
			Scope:  c.Query("scope"),
			Type:   c.Query("type"),
			Search: c.Query("search"),
		}

		if filters.Scope != "" && !validScope(filters.Scope) {
			return fiber.NewError(fiber.StatusBadRequest, "scope geçersiz")
		}
		if filters.Type != "" && !validType(filters.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "type geçersiz")
		}

		if s := c.Query("company_id"); s != "" {
			if _, err := fmt.Sscan(s, &filters.CompanyID); err != nil || filters.CompanyID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "company_id geçersiz")
			}
		}
		if s := c.Query("project_id"); s != "" {
			if _, err := fmt.Sscan(s, &filters.ProjectID); err != nil || filters.ProjectID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "project_id geçersiz")
			}
		}
		if s := c.Query("start_date"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date geçersiz")
			}
			filters.StartDate = &d
		}
		if s := c.Query("end_date"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date geçersiz")
			}
			filters.EndDate = &d
		}
		if s := c.Query("limit"); s != "" {
			if _, err := fmt.Sscan(s, &filters.Limit); err != nil || filters.Limit <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit geçersiz")
			}
		}

		rows, err := List(filters)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlemler listelenemedi")
		}

		resp := make([]TransactionResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}

		return c.JSON(resp)
	}
}

// GET /api/transactions/recent?limit=10
func RecentTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 10
		if s := c.Query("limit"); s != "" {
			if _, err := fmt.Sscan(s, &limit); err != nil || limit <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit geçersiz")
			}
		}

		rows, err := Recent(limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Son işlemler listelenemedi")
		}

		resp := make([]TransactionResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}

		return c.JSON(resp)
	}
}
