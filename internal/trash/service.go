package trash

import (
	"encoding/json"
	"fmt"
	"time"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"

	"gorm.io/gorm"
)

// RestoreResult - restore beklenen, kurtarılabilir bir hata ile bitebilir;
// bu yüzden hata fırlatmak yerine yapılandırılmış sonuç döner (UI inline gösterir).
type RestoreResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Snapshot - silinen kaydın tam JSON kopyasını çöp kutusuna yazar.
// Çağıran, silme işleminin transaction'ı içinden vermelidir ki kayıt ve
// kopyası tek atomik birimde yer değiştirsin.
func Snapshot(tx *gorm.DB, trashType models.TrashType, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("kayıt serileştirilemedi: %w", err)
	}

	item := models.TrashItem{
		Type:      trashType,
		Data:      string(data),
		DeletedAt: time.Now(),
	}

	if err := tx.Create(&item).Error; err != nil {
		return fmt.Errorf("çöp kaydı oluşturulamadı: %w", err)
	}

	return nil
}

// GetAll - çöp kutusundaki kayıtlar, en son silinen en üstte
func GetAll() ([]models.TrashItem, error) {
	var items []models.TrashItem
	if err := database.DB.Order("deleted_at desc, id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Restore - çöp kaydını orijinal tablosuna, orijinal ID'si ile geri yazar.
// ID korunur ki hâlâ bu ID'yi taşıyan bağımlı kayıtlar (allocation'lar,
// geçmiş hareketler) geri yükleme sonrası tekrar çözülebilsin.
// Çöp kaydı ancak başarılı bir geri yüklemeden sonra silinir.
func Restore(trashID uint) RestoreResult {
	var item models.TrashItem
	if err := database.DB.First(&item, "id = ?", trashID).Error; err != nil {
		return RestoreResult{Success: false, Error: "Çöp kaydı bulunamadı"}
	}

	switch item.Type {
	case models.TrashTypeCompany:
		var rec models.Company
		return restoreRecord(item, &rec, func(tx *gorm.DB) error {
			return tx.Create(&rec).Error
		}, func() uint { return rec.ID })

	case models.TrashTypeProject:
		var rec models.Project
		return restoreRecord(item, &rec, func(tx *gorm.DB) error {
			return tx.Create(&rec).Error
		}, func() uint { return rec.ID })

	case models.TrashTypeTransaction:
		var rec models.Transaction
		return restoreRecord(item, &rec, func(tx *gorm.DB) error {
			return tx.Create(&rec).Error
		}, func() uint { return rec.ID })

	case models.TrashTypeMaterial:
		var rec models.Material
		return restoreRecord(item, &rec, func(tx *gorm.DB) error {
			return tx.Create(&rec).Error
		}, func() uint { return rec.ID })

	case models.TrashTypeStockMovement:
		var rec models.StockMovement
		return restoreRecord(item, &rec, func(tx *gorm.DB) error {
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			// Silme sırasında geri alınan stok etkisi yeniden uygulanır
			delta := rec.Quantity
			if rec.Type == models.StockMovementOut {
				delta = -delta
			}
			return tx.Model(&models.Material{}).
				Where("id = ?", rec.MaterialID).
				UpdateColumn("current_stock", gorm.Expr("current_stock + ?", delta)).Error
		}, func() uint { return rec.ID })

	default:
		return RestoreResult{Success: false, Error: fmt.Sprintf("Bilinmeyen kayıt tipi: %s", item.Type)}
	}
}

// restoreRecord - snapshot'ı çözer, ID'yi doğrular ve insert + çöp temizliğini
// tek transaction'da yapar. Insert başarısız olursa her şey geri alınır.
func restoreRecord(item models.TrashItem, target any, insert func(tx *gorm.DB) error, recordID func() uint) RestoreResult {
	if err := json.Unmarshal([]byte(item.Data), target); err != nil {
		return RestoreResult{Success: false, Error: "Kayıt verisi çözümlenemedi"}
	}

	if recordID() == 0 {
		return RestoreResult{Success: false, Error: "Kayıt verisinde geçerli bir ID yok"}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := insert(tx); err != nil {
			return err
		}
		return tx.Delete(&models.TrashItem{}, "id = ?", item.ID).Error
	})
	if err != nil {
		return RestoreResult{Success: false, Error: "Kayıt geri yüklenemedi"}
	}

	return RestoreResult{Success: true}
}

// PermanentDelete - tek çöp kaydını kalıcı olarak siler. Canlı kayıt zaten
// yok; geri dönüşü olmayan son adımdır.
func PermanentDelete(trashID uint) (bool, error) {
	res := database.DB.Delete(&models.TrashItem{}, "id = ?", trashID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// EmptyTrash - çöp kutusunu tamamen boşaltır
func EmptyTrash() error {
	return database.DB.Where("1 = 1").Delete(&models.TrashItem{}).Error
}
