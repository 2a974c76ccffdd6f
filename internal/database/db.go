package database

import (
	"log"

	"insaat-backend/internal/config"
	"insaat-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// SQLite tek yazarlı çalışır; foreign key kontrolü varsayılan kapalı geldiği için açıyoruz
	if err := DB.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		log.Fatalf("PRAGMA foreign_keys ayarlanamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Project{},
		&models.Category{},
		&models.Transaction{},
		&models.PaymentAllocation{},
		&models.TrashItem{},
		&models.Material{},
		&models.StockMovement{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
