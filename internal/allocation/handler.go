package allocation

import (
	"errors"
	"fmt"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AllocationResponse struct {
	ID                    uint    `json:"id"`
	PaymentID             uint    `json:"payment_id"`
	InvoiceID             uint    `json:"invoice_id"`
	Amount                float64 `json:"amount"`
	CounterpartDesc       string  `json:"counterpart_description"`
	CounterpartAmountTRY  float64 `json:"counterpart_amount_try"`
	CounterpartDate       string  `json:"counterpart_date"`
	CounterpartDocumentNo string  `json:"counterpart_document_no"`
}

type InvoiceWithBalanceResponse struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	DocumentNo  string  `json:"document_no"`
	AmountTRY   float64 `json:"amount_try"`
	Allocated   float64 `json:"allocated"`
	Remaining   float64 `json:"remaining"`
}

type SetAllocationsRequest struct {
	Allocations []AllocationEntry `json:"allocations"`
}

func toAllocationResponses(rows []AllocationRow) []AllocationResponse {
	resp := make([]AllocationResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, AllocationResponse{
			ID:                    r.ID,
			PaymentID:             r.PaymentID,
			InvoiceID:             r.InvoiceID,
			Amount:                r.Amount,
			CounterpartDesc:       r.CounterpartDesc,
			CounterpartAmountTRY:  r.CounterpartAmountTRY,
			CounterpartDate:       r.CounterpartDate.Format("2006-01-02"),
			CounterpartDocumentNo: r.CounterpartDocumentNo,
		})
	}
	return resp
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
	}
	return id, nil
}

// GET /api/allocations/payment/:id
func GetForPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		rows, err := GetForPayment(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bağlantılar listelenemedi")
		}

		return c.JSON(toAllocationResponses(rows))
	}
}

// GET /api/allocations/invoice/:id
func GetForInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		rows, err := GetForInvoice(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bağlantılar listelenemedi")
		}

		return c.JSON(toAllocationResponses(rows))
	}
}

// GET /api/allocations/open-invoices?entity_id=1&entity_type=company&invoice_type=invoice_out
func OpenInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entityID uint
		if _, err := fmt.Sscan(c.Query("entity_id"), &entityID); err != nil || entityID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "entity_id geçersiz")
		}

		entityType := c.Query("entity_type")
		if entityType != "company" && entityType != "project" {
			return fiber.NewError(fiber.StatusBadRequest, "entity_type 'company' veya 'project' olmalı")
		}

		invoiceType := models.TransactionType(c.Query("invoice_type"))
		if invoiceType != models.TypeInvoiceOut && invoiceType != models.TypeInvoiceIn {
			return fiber.NewError(fiber.StatusBadRequest, "invoice_type 'invoice_out' veya 'invoice_in' olmalı")
		}

		rows, err := GetInvoicesWithBalance(entityID, entityType, invoiceType)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Açık faturalar listelenemedi")
		}

		resp := make([]InvoiceWithBalanceResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, InvoiceWithBalanceResponse{
				ID:          r.ID,
				Date:        r.Date.Format("2006-01-02"),
				Description: r.Description,
				DocumentNo:  r.DocumentNo,
				AmountTRY:   r.AmountTRY,
				Allocated:   r.Allocated,
				Remaining:   r.Remaining,
			})
		}

		return c.JSON(resp)
	}
}

// PUT /api/allocations/payment/:id
func SetForPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var payment models.Transaction
		if err := database.DB.First(&payment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ödeme bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ödeme okunamadı")
		}
		if payment.Type != models.TypePaymentIn && payment.Type != models.TypePaymentOut {
			return fiber.NewError(fiber.StatusBadRequest, "İşlem bir ödeme değil")
		}

		var body SetAllocationsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := SetForPayment(id, body.Allocations); err != nil {
			if errors.Is(err, ErrOverAllocated) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Bağlantılar kaydedilemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/allocations/payment/:id
func DeleteForPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		if err := DeleteForPayment(id); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bağlantılar silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
