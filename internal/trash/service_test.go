package trash

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Company{},
		&models.Project{},
		&models.Transaction{},
		&models.TrashItem{},
		&models.Material{},
		&models.StockMovement{},
	))

	database.DB = db
}

func TestCompanyRoundTripKeepsOriginalID(t *testing.T) {
	setupTestDB(t)

	comp := models.Company{Name: "Gürel İnşaat", Type: models.CompanyTypeSupplier, Phone: "0212 555 1212"}
	require.NoError(t, database.DB.Create(&comp).Error)
	originalID := comp.ID

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := Snapshot(tx, models.TrashTypeCompany, &comp); err != nil {
			return err
		}
		return tx.Delete(&models.Company{}, "id = ?", comp.ID).Error
	})
	require.NoError(t, err)

	items, err := GetAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.TrashTypeCompany, items[0].Type)

	res := Restore(items[0].ID)
	require.True(t, res.Success, res.Error)

	var restored models.Company
	require.NoError(t, database.DB.First(&restored, "id = ?", originalID).Error)
	assert.Equal(t, "Gürel İnşaat", restored.Name)
	assert.Equal(t, "0212 555 1212", restored.Phone)

	// Çöp kaydı geri yükleme ile temizlendi
	items, err = GetAll()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRestoreMissingTrashItem(t *testing.T) {
	setupTestDB(t)

	res := Restore(4242)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestRestoreRejectsCorruptData(t *testing.T) {
	setupTestDB(t)

	item := models.TrashItem{
		Type:      models.TrashTypeCompany,
		Data:      "{bozuk json",
		DeletedAt: time.Now(),
	}
	require.NoError(t, database.DB.Create(&item).Error)

	res := Restore(item.ID)
	assert.False(t, res.Success)

	// Başarısız restore çöp kaydını silmez
	var count int64
	database.DB.Model(&models.TrashItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRestoreRejectsZeroID(t *testing.T) {
	setupTestDB(t)

	item := models.TrashItem{
		Type:      models.TrashTypeCompany,
		Data:      `{"id":0,"name":"Kayıp Cari"}`,
		DeletedAt: time.Now(),
	}
	require.NoError(t, database.DB.Create(&item).Error)

	res := Restore(item.ID)
	assert.False(t, res.Success)
}

func TestRestoreUnknownType(t *testing.T) {
	setupTestDB(t)

	item := models.TrashItem{
		Type:      models.TrashType("fatura_arşivi"),
		Data:      `{"id":1}`,
		DeletedAt: time.Now(),
	}
	require.NoError(t, database.DB.Create(&item).Error)

	res := Restore(item.ID)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "Bilinmeyen kayıt tipi")
}

func TestRestoreStockMovementReappliesStockEffect(t *testing.T) {
	setupTestDB(t)

	material := models.Material{Name: "Çimento", Unit: "torba", CurrentStock: 50}
	require.NoError(t, database.DB.Create(&material).Error)

	mov := models.StockMovement{
		MaterialID: material.ID,
		Type:       models.StockMovementOut,
		Quantity:   20,
		Date:       time.Now(),
	}
	require.NoError(t, database.DB.Create(&mov).Error)

	// Silme akışının yaptığı gibi: snapshot + etkinin geri alınması + satır silme
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := Snapshot(tx, models.TrashTypeStockMovement, &mov); err != nil {
			return err
		}
		if err := tx.Model(&models.Material{}).
			Where("id = ?", material.ID).
			UpdateColumn("current_stock", gorm.Expr("current_stock + ?", mov.Quantity)).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StockMovement{}, "id = ?", mov.ID).Error
	})
	require.NoError(t, err)

	var m models.Material
	require.NoError(t, database.DB.First(&m, "id = ?", material.ID).Error)
	require.Equal(t, 70.0, m.CurrentStock)

	items, err := GetAll()
	require.NoError(t, err)
	require.Len(t, items, 1)

	res := Restore(items[0].ID)
	require.True(t, res.Success, res.Error)

	// Çıkış hareketi geri geldi, stok etkisi yeniden uygulandı
	require.NoError(t, database.DB.First(&m, "id = ?", material.ID).Error)
	assert.Equal(t, 50.0, m.CurrentStock)

	var restored models.StockMovement
	require.NoError(t, database.DB.First(&restored, "id = ?", mov.ID).Error)
	assert.Equal(t, models.StockMovementOut, restored.Type)
}

func TestPermanentDeleteAndEmptyTrash(t *testing.T) {
	setupTestDB(t)

	for i := 0; i < 3; i++ {
		item := models.TrashItem{
			Type:      models.TrashTypeCompany,
			Data:      fmt.Sprintf(`{"id":%d,"name":"Cari %d"}`, i+1, i+1),
			DeletedAt: time.Now(),
		}
		require.NoError(t, database.DB.Create(&item).Error)
	}

	items, err := GetAll()
	require.NoError(t, err)
	require.Len(t, items, 3)

	ok, err := PermanentDelete(items[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = PermanentDelete(9999)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, EmptyTrash())

	items, err = GetAll()
	require.NoError(t, err)
	assert.Empty(t, items)
}
