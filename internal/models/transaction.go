package models

import "time"

type TransactionScope string

const (
	ScopeCari    TransactionScope = "cari"    // cari hesaba bağlı
	ScopeProject TransactionScope = "project" // projeye bağlı
	ScopeGeneral TransactionScope = "general" // genel şirket gideri/geliri
)

type TransactionType string

const (
	TypeInvoiceOut TransactionType = "invoice_out" // kesilen fatura (alacak doğurur)
	TypePaymentIn  TransactionType = "payment_in"  // tahsilat
	TypeInvoiceIn  TransactionType = "invoice_in"  // gelen fatura (borç doğurur)
	TypePaymentOut TransactionType = "payment_out" // ödeme
)

// Transaction - Para hareketi (fatura veya ödeme).
// AmountTRY yazma anında bir kez hesaplanır ve saklanır; okumada asla
// yeniden hesaplanmaz.
type Transaction struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Scope           TransactionScope `gorm:"size:20;not null;index" json:"scope"`
	Type            TransactionType  `gorm:"size:20;not null;index" json:"type"`
	Amount          float64          `gorm:"not null" json:"amount"`
	Currency        string           `gorm:"size:10;not null;default:TRY" json:"currency"`
	ExchangeRate    float64          `gorm:"not null;default:1" json:"exchange_rate"`
	AmountTRY       float64          `gorm:"column:amount_try;not null" json:"amount_try"`
	CompanyID       *uint            `gorm:"index" json:"company_id"`
	ProjectID       *uint            `gorm:"index" json:"project_id"`
	CategoryID      *uint            `gorm:"index" json:"category_id"`
	DocumentNo      string           `gorm:"size:100" json:"document_no"`
	LinkedInvoiceID *uint            `json:"linked_invoice_id"`
	Description     string           `gorm:"size:500" json:"description"`
	Date            time.Time        `gorm:"index;not null" json:"date"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
