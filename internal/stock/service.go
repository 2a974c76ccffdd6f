package stock

import (
	"errors"
	"time"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"
	"insaat-backend/internal/trash"

	"gorm.io/gorm"
)

type CreateMovementInput struct {
	MaterialID uint
	Type       models.StockMovementType
	Quantity   float64
	UnitPrice  float64
	ProjectID  *uint
	Date       time.Time
	Note       string
}

// stockDelta - hareketin current_stock üzerindeki işaretli etkisi
func stockDelta(m *models.StockMovement) float64 {
	if m.Type == models.StockMovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

// CreateMovement - hareket satırı ve current_stock güncellemesi tek
// transaction'dadır; stok miktarı başka hiçbir yoldan değişmez.
func CreateMovement(input CreateMovementInput) (*models.StockMovement, error) {
	var material models.Material
	if err := database.DB.First(&material, "id = ?", input.MaterialID).Error; err != nil {
		return nil, err
	}

	mov := models.StockMovement{
		MaterialID: input.MaterialID,
		Type:       input.Type,
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		ProjectID:  input.ProjectID,
		Date:       input.Date,
		Note:       input.Note,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&mov).Error; err != nil {
			return err
		}
		return tx.Model(&models.Material{}).
			Where("id = ?", mov.MaterialID).
			UpdateColumn("current_stock", gorm.Expr("current_stock + ?", stockDelta(&mov))).Error
	})
	if err != nil {
		return nil, err
	}

	return &mov, nil
}

// DeleteMovement - snapshot stok etkisi geri alınmadan ÖNCE çekilir;
// snapshot, etki geri alma ve satır silme tek transaction'dadır.
// Kayıt yoksa hata yerine false döner.
func DeleteMovement(id uint) (bool, error) {
	var mov models.StockMovement
	if err := database.DB.First(&mov, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := trash.Snapshot(tx, models.TrashTypeStockMovement, &mov); err != nil {
			return err
		}
		if err := tx.Model(&models.Material{}).
			Where("id = ?", mov.MaterialID).
			UpdateColumn("current_stock", gorm.Expr("current_stock - ?", stockDelta(&mov))).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StockMovement{}, "id = ?", mov.ID).Error
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// DeleteMaterial - malzeme kartını çöp kutusuna taşır. Hareket geçmişi
// silinmez; geri yükleme aynı ID ile döndüğünde geçmiş tekrar çözülür.
func DeleteMaterial(id uint) (bool, error) {
	var material models.Material
	if err := database.DB.First(&material, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := trash.Snapshot(tx, models.TrashTypeMaterial, &material); err != nil {
			return err
		}
		return tx.Delete(&models.Material{}, "id = ?", material.ID).Error
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
