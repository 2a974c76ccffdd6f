package allocation

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
		&models.PaymentAllocation{},
	))

	database.DB = db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func newTx(t *testing.T, txType models.TransactionType, amountTRY float64, companyID uint, date string) models.Transaction {
	t.Helper()
	tx := models.Transaction{
		Scope:        models.ScopeCari,
		Type:         txType,
		Amount:       amountTRY,
		Currency:     "TRY",
		ExchangeRate: 1,
		AmountTRY:    amountTRY,
		CompanyID:    &companyID,
		Date:         mustDate(t, date),
	}
	require.NoError(t, database.DB.Create(&tx).Error)
	return tx
}

func newCompany(t *testing.T, name string) models.Company {
	t.Helper()
	comp := models.Company{Name: name, Type: models.CompanyTypeCustomer}
	require.NoError(t, database.DB.Create(&comp).Error)
	return comp
}

func TestSetForPaymentReplacesExistingSet(t *testing.T) {
	setupTestDB(t)

	comp := newCompany(t, "Aydın Yapı")
	inv1 := newTx(t, models.TypeInvoiceOut, 1000, comp.ID, "2025-01-10")
	inv2 := newTx(t, models.TypeInvoiceOut, 500, comp.ID, "2025-01-20")
	pay := newTx(t, models.TypePaymentIn, 800, comp.ID, "2025-02-01")

	require.NoError(t, SetForPayment(pay.ID, []AllocationEntry{
		{InvoiceID: inv1.ID, Amount: 600},
		{InvoiceID: inv2.ID, Amount: 200},
	}))

	rows, err := GetForPayment(pay.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Fatura tarihine göre sıralı
	assert.Equal(t, inv1.ID, rows[0].InvoiceID)
	assert.Equal(t, 600.0, rows[0].Amount)
	assert.Equal(t, 1000.0, rows[0].CounterpartAmountTRY)

	// Yeni set eskisinin tamamının yerine geçer
	require.NoError(t, SetForPayment(pay.ID, []AllocationEntry{
		{InvoiceID: inv2.ID, Amount: 300},
	}))

	rows, err = GetForPayment(pay.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, inv2.ID, rows[0].InvoiceID)
	assert.Equal(t, 300.0, rows[0].Amount)
}

func TestSetForPaymentSkipsNonPositiveEntries(t *testing.T) {
	setupTestDB(t)

	comp := newCompany(t, "Kaya İnşaat")
	inv := newTx(t, models.TypeInvoiceOut, 1000, comp.ID, "2025-01-10")
	pay := newTx(t, models.TypePaymentIn, 500, comp.ID, "2025-02-01")

	require.NoError(t, SetForPayment(pay.ID, []AllocationEntry{
		{InvoiceID: inv.ID, Amount: 0},
		{InvoiceID: inv.ID, Amount: -50},
		{InvoiceID: inv.ID, Amount: 500},
	}))

	rows, err := GetForPayment(pay.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 500.0, rows[0].Amount)
}

func TestSetForPaymentOverAllocationRollsBack(t *testing.T) {
	setupTestDB(t)

	comp := newCompany(t, "Öztürk Ticaret")
	inv := newTx(t, models.TypeInvoiceOut, 1000, comp.ID, "2025-01-10")
	pay1 := newTx(t, models.TypePaymentIn, 700, comp.ID, "2025-02-01")
	pay2 := newTx(t, models.TypePaymentIn, 700, comp.ID, "2025-02-15")

	require.NoError(t, SetForPayment(pay1.ID, []AllocationEntry{
		{InvoiceID: inv.ID, Amount: 700},
	}))

	// Kalan 300 iken 400 bağlamaya çalış
	err := SetForPayment(pay2.ID, []AllocationEntry{
		{InvoiceID: inv.ID, Amount: 400},
	})
	assert.ErrorIs(t, err, ErrOverAllocated)

	// pay2 için hiçbir şey yazılmadı, pay1'in seti duruyor
	rows, err := GetForPayment(pay2.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = GetForPayment(pay1.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 700.0, rows[0].Amount)
}

func TestSetForPaymentReplaceFreesOwnShare(t *testing.T) {
	setupTestDB(t)

	comp := newCompany(t, "Şahin Yapı")
	inv := newTx(t, models.TypeInvoiceOut, 1000, comp.ID, "2025-01-10")
	pay := newTx(t, models.TypePaymentIn, 1000, comp.ID, "2025-02-01")

	require.NoError(t, SetForPayment(pay.ID, []AllocationEntry{
		{InvoiceID: inv.ID, Amount: 900},
	}))

	// Ödemenin kendi eski payı önce silindiği için 1000 hâlâ sığar
	require.NoError(t, SetForPayment(pay.ID, []AllocationEntry{
		{InvoiceID: inv.ID, Amount: 1000},
	}))

	rows, err := GetForPayment(pay.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1000.0, rows[0].Amount)
}

func TestGetInvoicesWithBalanceExcludesFullyPaid(t *testing.T) {
	setupTestDB(t)

	comp := newCompany(t, "Demirtaş İnşaat")
	inv1 := newTx(t, models.TypeInvoiceOut, 1000, comp.ID, "2025-01-10")
	inv2 := newTx(t, models.TypeInvoiceOut, 500, comp.ID, "2025-01-20")
	pay1 := newTx(t, models.TypePaymentIn, 400, comp.ID, "2025-02-01")
	pay2 := newTx(t, models.TypePaymentIn, 600, comp.ID, "2025-02-10")

	require.NoError(t, SetForPayment(pay1.ID, []AllocationEntry{
		{InvoiceID: inv1.ID, Amount: 400},
	}))
	require.NoError(t, SetForPayment(pay2.ID, []AllocationEntry{
		{InvoiceID: inv1.ID, Amount: 600},
	}))

	// inv1 tamamen kapandı, listede yalnız inv2 kalır
	open, err := GetInvoicesWithBalance(comp.ID, "company", models.TypeInvoiceOut)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, inv2.ID, open[0].ID)
	assert.Equal(t, 0.0, open[0].Allocated)
	assert.Equal(t, 500.0, open[0].Remaining)
}

func TestGetInvoicesWithBalanceRejectsBadEntityType(t *testing.T) {
	setupTestDB(t)

	_, err := GetInvoicesWithBalance(1, "warehouse", models.TypeInvoiceOut)
	assert.Error(t, err)
}

func TestGetForInvoiceAndDeleteForPayment(t *testing.T) {
	setupTestDB(t)

	comp := newCompany(t, "Yıldız Ticaret")
	inv := newTx(t, models.TypeInvoiceOut, 1000, comp.ID, "2025-01-10")
	pay1 := newTx(t, models.TypePaymentIn, 300, comp.ID, "2025-02-01")
	pay2 := newTx(t, models.TypePaymentIn, 200, comp.ID, "2025-03-01")

	require.NoError(t, SetForPayment(pay1.ID, []AllocationEntry{{InvoiceID: inv.ID, Amount: 300}}))
	require.NoError(t, SetForPayment(pay2.ID, []AllocationEntry{{InvoiceID: inv.ID, Amount: 200}}))

	rows, err := GetForInvoice(inv.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Ödeme tarihine göre sıralı
	assert.Equal(t, pay1.ID, rows[0].PaymentID)
	assert.Equal(t, pay2.ID, rows[1].PaymentID)

	require.NoError(t, DeleteForPayment(pay1.ID))

	rows, err = GetForInvoice(inv.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, pay2.ID, rows[0].PaymentID)

	// İkinci çağrı zararsız
	require.NoError(t, DeleteForPayment(pay1.ID))
}
