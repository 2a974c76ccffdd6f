package allocation

import (
	"errors"
	"time"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"

	"gorm.io/gorm"
)

// ErrOverAllocated - bir faturaya kalan bakiyesinden fazla tutar bağlanmaya
// çalışıldı. setForPayment bu durumda hiçbir şey yazmadan geri döner.
var ErrOverAllocated = errors.New("dağıtılan tutar faturanın kalan bakiyesini aşıyor")

// AllocationRow - karşı taraf işlem bilgileriyle zenginleştirilmiş allocation
type AllocationRow struct {
	ID                    uint      `json:"id"`
	PaymentID             uint      `json:"payment_id"`
	InvoiceID             uint      `json:"invoice_id"`
	Amount                float64   `json:"amount"`
	CounterpartDesc       string    `gorm:"column:counterpart_desc" json:"counterpart_description"`
	CounterpartAmountTRY  float64   `gorm:"column:counterpart_amount_try" json:"counterpart_amount_try"`
	CounterpartDate       time.Time `json:"counterpart_date"`
	CounterpartDocumentNo string    `gorm:"column:counterpart_document_no" json:"counterpart_document_no"`
}

// InvoiceWithBalance - kalan bakiyesi pozitif olan fatura satırı;
// bir ödemenin bölüştürülebileceği aday listesi
type InvoiceWithBalance struct {
	ID         uint      `json:"id"`
	Date       time.Time `json:"date"`
	Description string   `json:"description"`
	DocumentNo string    `json:"document_no"`
	AmountTRY  float64   `gorm:"column:amount_try" json:"amount_try"`
	Allocated  float64   `json:"allocated"`
	Remaining  float64   `json:"remaining"`
}

type AllocationEntry struct {
	InvoiceID uint    `json:"invoice_id"`
	Amount    float64 `json:"amount"`
}

// GetForPayment - ödemenin fatura bağlantıları, fatura tarihi sırasıyla
func GetForPayment(paymentID uint) ([]AllocationRow, error) {
	var rows []AllocationRow
	err := database.DB.Table("payment_allocations AS a").
		Select(`a.id, a.payment_id, a.invoice_id, a.amount,
			i.description AS counterpart_desc,
			i.amount_try AS counterpart_amount_try,
			i.date AS counterpart_date,
			i.document_no AS counterpart_document_no`).
		Joins("JOIN transactions i ON i.id = a.invoice_id").
		Where("a.payment_id = ?", paymentID).
		Order("i.date asc, i.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetForInvoice - faturaya bağlanan ödemeler, ödeme tarihi sırasıyla
func GetForInvoice(invoiceID uint) ([]AllocationRow, error) {
	var rows []AllocationRow
	err := database.DB.Table("payment_allocations AS a").
		Select(`a.id, a.payment_id, a.invoice_id, a.amount,
			p.description AS counterpart_desc,
			p.amount_try AS counterpart_amount_try,
			p.date AS counterpart_date,
			p.document_no AS counterpart_document_no`).
		Joins("JOIN transactions p ON p.id = a.payment_id").
		Where("a.invoice_id = ?", invoiceID).
		Order("p.date asc, p.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

const allocatedSubquery = `IFNULL((SELECT SUM(pa.amount) FROM payment_allocations pa WHERE pa.invoice_id = t.id), 0)`

// GetInvoicesWithBalance - cari veya proje için, kalanı pozitif faturalar
// en eski önce. entityType "company" veya "project" olmalı.
func GetInvoicesWithBalance(entityID uint, entityType string, invoiceType models.TransactionType) ([]InvoiceWithBalance, error) {
	dbq := database.DB.Table("transactions AS t").
		Select(`t.id, t.date, t.description, t.document_no, t.amount_try, ` + allocatedSubquery + ` AS allocated`).
		Where("t.type = ?", invoiceType)

	switch entityType {
	case "company":
		dbq = dbq.Where("t.company_id = ?", entityID)
	case "project":
		dbq = dbq.Where("t.project_id = ?", entityID)
	default:
		return nil, errors.New("entityType 'company' veya 'project' olmalı")
	}

	dbq = dbq.Where("t.amount_try - "+allocatedSubquery+" > 0").
		Order("t.date asc, t.id asc")

	var rows []InvoiceWithBalance
	if err := dbq.Scan(&rows).Error; err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].Remaining = rows[i].AmountTRY - rows[i].Allocated
	}

	return rows, nil
}

// SetForPayment - replace-all: ödemenin mevcut bağlantılarının tamamı
// silinir, verilen liste yazılır; ikisi tek transaction'dadır. Yarıda
// kesilirse veritabanı ya eski ya yeni tam seti gösterir, karışım asla.
// Tutarı 0 veya negatif girişler atlanır; bir faturanın kalanını aşan
// toplam ErrOverAllocated ile reddedilir.
func SetForPayment(paymentID uint, entries []AllocationEntry) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", paymentID).
			Delete(&models.PaymentAllocation{}).Error; err != nil {
			return err
		}

		// Fatura başına istenen toplam
		requested := make(map[uint]float64)
		for _, e := range entries {
			if e.Amount <= 0 {
				continue
			}
			requested[e.InvoiceID] += e.Amount
		}

		for invoiceID, total := range requested {
			var invoice models.Transaction
			if err := tx.First(&invoice, "id = ?", invoiceID).Error; err != nil {
				return err
			}

			var allocated float64
			if err := tx.Model(&models.PaymentAllocation{}).
				Where("invoice_id = ?", invoiceID).
				Select("IFNULL(SUM(amount), 0)").
				Scan(&allocated).Error; err != nil {
				return err
			}

			if total > invoice.AmountTRY-allocated {
				return ErrOverAllocated
			}
		}

		for _, e := range entries {
			if e.Amount <= 0 {
				continue
			}
			alloc := models.PaymentAllocation{
				PaymentID: paymentID,
				InvoiceID: e.InvoiceID,
				Amount:    e.Amount,
			}
			if err := tx.Create(&alloc).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteForPayment - ödemenin tüm bağlantılarını koşulsuz siler.
// Kullanım sözleşmesi: ledger'ın kendi silme akışı da aynı temizliği yapar;
// iki yol da idempotent olduğundan çifte çağrı zararsızdır ama gereksizdir.
func DeleteForPayment(paymentID uint) error {
	return database.DB.Where("payment_id = ?", paymentID).
		Delete(&models.PaymentAllocation{}).Error
}
