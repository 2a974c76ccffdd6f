package models

import "time"

type CompanyType string

const (
	CompanyTypeCustomer      CompanyType = "customer"      // müşteri
	CompanyTypeSupplier      CompanyType = "supplier"      // tedarikçi
	CompanyTypeSubcontractor CompanyType = "subcontractor" // taşeron
)

// Company - Cari hesap (müşteri/tedarikçi/taşeron)
type Company struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"size:150;not null" json:"name"`
	Type      CompanyType `gorm:"size:20;not null;index" json:"type"`
	Phone     string      `gorm:"size:50" json:"phone"`
	Email     string      `gorm:"size:100" json:"email"`
	Address   string      `gorm:"size:255" json:"address"`
	TaxNumber string      `gorm:"size:50" json:"tax_number"`
	Notes     string      `gorm:"size:500" json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
