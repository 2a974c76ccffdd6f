package models

import "time"

type TrashType string

const (
	TrashTypeCompany       TrashType = "company"
	TrashTypeProject       TrashType = "project"
	TrashTypeTransaction   TrashType = "transaction"
	TrashTypeMaterial      TrashType = "material"
	TrashTypeStockMovement TrashType = "stock_movement"
)

// TrashItem - Soft-delete edilen kaydın tek kalıcı kopyası.
// Data, silinen satırın tam JSON hali (orijinal ID dahil); geri yükleme
// bu JSON'u aynı ID ile tabloya geri yazar.
type TrashItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      TrashType `gorm:"size:30;not null;index" json:"type"`
	Data      string    `gorm:"type:text;not null" json:"data"`
	DeletedAt time.Time `gorm:"index;not null" json:"deleted_at"`
}
