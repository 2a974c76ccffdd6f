package models

import "time"

// Project - Şantiye/proje kaydı
type Project struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:150;not null" json:"name"`
	CompanyID *uint      `gorm:"index" json:"company_id"`
	Status    string     `gorm:"size:20;not null;default:active" json:"status"` // active / completed / cancelled
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Budget    float64    `json:"budget"`
	Notes     string     `gorm:"size:500" json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
