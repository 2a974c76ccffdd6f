package ledger

import (
	"errors"
	"time"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"
	"insaat-backend/internal/trash"

	"gorm.io/gorm"
)

// TransactionRow - cari/proje/kategori adları ve bu satırın ödeme tarafı
// olarak dağıttığı toplam ile zenginleştirilmiş işlem satırı
type TransactionRow struct {
	ID              uint                    `json:"id"`
	Scope           models.TransactionScope `json:"scope"`
	Type            models.TransactionType  `json:"type"`
	Amount          float64                 `json:"amount"`
	Currency        string                  `json:"currency"`
	ExchangeRate    float64                 `json:"exchange_rate"`
	AmountTRY       float64                 `gorm:"column:amount_try" json:"amount_try"`
	CompanyID       *uint                   `json:"company_id"`
	ProjectID       *uint                   `json:"project_id"`
	CategoryID      *uint                   `json:"category_id"`
	DocumentNo      string                  `json:"document_no"`
	LinkedInvoiceID *uint                   `json:"linked_invoice_id"`
	Description     string                  `json:"description"`
	Date            time.Time               `json:"date"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	CompanyName     string                  `json:"company_name"`
	ProjectName     string                  `json:"project_name"`
	CategoryName    string                  `json:"category_name"`
	AllocatedTotal  float64                 `json:"allocated_total"`
}

type CreateTransactionInput struct {
	Scope           models.TransactionScope
	Type            models.TransactionType
	Amount          float64
	Currency        string
	ExchangeRate    float64
	CompanyID       *uint
	ProjectID       *uint
	CategoryID      *uint
	DocumentNo      string
	LinkedInvoiceID *uint
	Description     string
	Date            time.Time
}

// UpdateTransactionInput - nil alanlar dokunulmadan bırakılır
type UpdateTransactionInput struct {
	Scope           *models.TransactionScope
	Type            *models.TransactionType
	Amount          *float64
	Currency        *string
	ExchangeRate    *float64
	CompanyID       *uint
	ProjectID       *uint
	CategoryID      *uint
	DocumentNo      *string
	LinkedInvoiceID *uint
	Description     *string
	Date            *time.Time
}

type Filters struct {
	Scope     string
	Type      string
	CompanyID uint
	ProjectID uint
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	Limit     int
}

const transactionSelect = `t.id, t.scope, t.type, t.amount, t.currency, t.exchange_rate, t.amount_try,
t.company_id, t.project_id, t.category_id, t.document_no, t.linked_invoice_id,
t.description, t.date, t.created_at, t.updated_at,
IFNULL(c.name, '') AS company_name,
IFNULL(p.name, '') AS project_name,
IFNULL(k.name, '') AS category_name,
IFNULL((SELECT SUM(pa.amount) FROM payment_allocations pa WHERE pa.payment_id = t.id), 0) AS allocated_total`

func baseQuery() *gorm.DB {
	return database.DB.Table("transactions AS t").
		Select(transactionSelect).
		Joins("LEFT JOIN companies c ON c.id = t.company_id").
		Joins("LEFT JOIN projects p ON p.id = t.project_id").
		Joins("LEFT JOIN categories k ON k.id = t.category_id")
}

func GetByID(id uint) (*TransactionRow, error) {
	var row TransactionRow
	if err := baseQuery().Where("t.id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create - tutar/kur doğrulanır, TRY karşılığı bir kez hesaplanıp yazılır
func Create(input CreateTransactionInput) (*TransactionRow, error) {
	if input.Currency == "" {
		input.Currency = BaseCurrency
	}
	if input.Currency == BaseCurrency {
		input.ExchangeRate = 1
	}

	if err := ValidateMoneyInput(input.Amount, input.Currency, input.ExchangeRate); err != nil {
		return nil, err
	}

	tx := models.Transaction{
		Scope:           input.Scope,
		Type:            input.Type,
		Amount:          input.Amount,
		Currency:        input.Currency,
		ExchangeRate:    input.ExchangeRate,
		AmountTRY:       DeriveBaseAmount(input.Amount, input.Currency, input.ExchangeRate),
		CompanyID:       input.CompanyID,
		ProjectID:       input.ProjectID,
		CategoryID:      input.CategoryID,
		DocumentNo:      input.DocumentNo,
		LinkedInvoiceID: input.LinkedInvoiceID,
		Description:     input.Description,
		Date:            input.Date,
	}

	if err := database.DB.Create(&tx).Error; err != nil {
		return nil, err
	}

	return GetByID(tx.ID)
}

// Update - yalnızca verilen alanları uygular. amount/currency/exchange_rate
// içinden herhangi biri değişiyorsa eksik kalanlar mevcut satırdan
// tamamlanır ve amount_try yeniden hesaplanır; aksi halde amount_try'a
// dokunulmaz.
func Update(id uint, input UpdateTransactionInput) (*TransactionRow, error) {
	var existing models.Transaction
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if input.Scope != nil {
		updates["scope"] = *input.Scope
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.CompanyID != nil {
		updates["company_id"] = *input.CompanyID
	}
	if input.ProjectID != nil {
		updates["project_id"] = *input.ProjectID
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}
	if input.DocumentNo != nil {
		updates["document_no"] = *input.DocumentNo
	}
	if input.LinkedInvoiceID != nil {
		updates["linked_invoice_id"] = *input.LinkedInvoiceID
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}

	moneyTouched := input.Amount != nil || input.Currency != nil || input.ExchangeRate != nil
	if moneyTouched {
		amount := existing.Amount
		currency := existing.Currency
		rate := existing.ExchangeRate

		if input.Amount != nil {
			amount = *input.Amount
		}
		if input.Currency != nil {
			currency = *input.Currency
		}
		if input.ExchangeRate != nil {
			rate = *input.ExchangeRate
		}
		if currency == BaseCurrency {
			rate = 1
		}

		if err := ValidateMoneyInput(amount, currency, rate); err != nil {
			return nil, err
		}

		updates["amount"] = amount
		updates["currency"] = currency
		updates["exchange_rate"] = rate
		updates["amount_try"] = DeriveBaseAmount(amount, currency, rate)
	}

	if len(updates) == 0 {
		return GetByID(id)
	}

	if err := database.DB.Model(&models.Transaction{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetByID(id)
}

// Delete - işlemi çöp kutusuna taşır. Snapshot, her iki taraftaki
// allocation temizliği ve satır silme tek transaction'dadır; kayıt yoksa
// hata yerine false döner.
func Delete(id uint) (bool, error) {
	row, err := GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := trash.Snapshot(tx, models.TrashTypeTransaction, row); err != nil {
			return err
		}
		// Bir işlem allocation'ın hem ödeme hem fatura tarafında olabilir
		if err := tx.Where("payment_id = ? OR invoice_id = ?", id, id).
			Delete(&models.PaymentAllocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Transaction{}, "id = ?", id).Error
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// List - filtreli liste, en yeni işlem en üstte
func List(filters Filters) ([]TransactionRow, error) {
	dbq := baseQuery()

	if filters.Scope != "" {
		dbq = dbq.Where("t.scope = ?", filters.Scope)
	}
	if filters.Type != "" {
		dbq = dbq.Where("t.type = ?", filters.Type)
	}
	if filters.CompanyID != 0 {
		dbq = dbq.Where("t.company_id = ?", filters.CompanyID)
	}
	if filters.ProjectID != 0 {
		dbq = dbq.Where("t.project_id = ?", filters.ProjectID)
	}
	if filters.StartDate != nil {
		dbq = dbq.Where("t.date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		dbq = dbq.Where("t.date <= ?", *filters.EndDate)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		dbq = dbq.Where("(t.description LIKE ? OR t.document_no LIKE ? OR c.name LIKE ?)", like, like, like)
	}

	dbq = dbq.Order("t.date DESC, t.created_at DESC")

	if filters.Limit > 0 {
		dbq = dbq.Limit(filters.Limit)
	}

	var rows []TransactionRow
	if err := dbq.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// Recent - dashboard için son işlemler
func Recent(limit int) ([]TransactionRow, error) {
	if limit <= 0 {
		limit = 10
	}
	return List(Filters{Limit: limit})
}
