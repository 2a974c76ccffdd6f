package models

import "time"

// PaymentAllocation - Bir ödemenin belli bir faturaya bağlanan kısmı.
// Amount her zaman TRY cinsindendir.
type PaymentAllocation struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	PaymentID uint    `gorm:"index;not null" json:"payment_id"`
	InvoiceID uint    `gorm:"index;not null" json:"invoice_id"`
	Amount    float64 `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
