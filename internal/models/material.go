package models

import "time"

// Material - Malzeme kartı. CurrentStock yalnızca stok hareketi
// oluşturma/silme/geri yükleme yollarından değişir.
type Material struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:150;not null" json:"name"`
	Unit         string  `gorm:"size:20;not null" json:"unit"` // kg, adet, m3 vs.
	CurrentStock float64 `gorm:"not null;default:0" json:"current_stock"`
	Notes        string  `gorm:"size:500" json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StockMovementType string

const (
	StockMovementIn  StockMovementType = "in"  // giriş
	StockMovementOut StockMovementType = "out" // çıkış
)

// StockMovement - Malzeme giriş/çıkış hareketi
type StockMovement struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	MaterialID uint              `gorm:"index;not null" json:"material_id"`
	Material   Material          `json:"-"`
	Type       StockMovementType `gorm:"size:10;not null" json:"type"`
	Quantity   float64           `gorm:"not null" json:"quantity"`
	UnitPrice  float64           `json:"unit_price"`
	ProjectID  *uint             `gorm:"index" json:"project_id"`
	Date       time.Time         `gorm:"index;not null" json:"date"`
	Note       string            `gorm:"size:255" json:"note"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
