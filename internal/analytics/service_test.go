package analytics

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
		&models.Transaction{},
	))

	database.DB = db
}

func newCompany(t *testing.T, name string) models.Company {
	t.Helper()
	comp := models.Company{Name: name, Type: models.CompanyTypeCustomer}
	require.NoError(t, database.DB.Create(&comp).Error)
	return comp
}

func insertTx(t *testing.T, txType models.TransactionType, amountTRY float64, companyID *uint, date time.Time) {
	t.Helper()
	tx := models.Transaction{
		Scope:        models.ScopeCari,
		Type:         txType,
		Amount:       amountTRY,
		Currency:     "TRY",
		ExchangeRate: 1,
		AmountTRY:    amountTRY,
		CompanyID:    companyID,
		Date:         date,
	}
	if companyID == nil {
		tx.Scope = models.ScopeGeneral
	}
	require.NoError(t, database.DB.Create(&tx).Error)
}

func mid(t *testing.T, year, month int) time.Time {
	t.Helper()
	return time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.Local)
}

func TestDashboardStatsPositiveOnlyBalances(t *testing.T) {
	setupTestDB(t)

	a := newCompany(t, "Cari A")
	b := newCompany(t, "Cari B")

	// A: 1000 fatura, 400 tahsilat → alacak 600
	insertTx(t, models.TypeInvoiceOut, 1000, &a.ID, mid(t, 2025, 1))
	insertTx(t, models.TypePaymentIn, 400, &a.ID, mid(t, 2025, 2))

	// B: fazla tahsilat → bakiye -200; toplamı düşürmez
	insertTx(t, models.TypeInvoiceOut, 300, &b.ID, mid(t, 2025, 1))
	insertTx(t, models.TypePaymentIn, 500, &b.ID, mid(t, 2025, 2))

	// Genel gider ve ödeme
	insertTx(t, models.TypeInvoiceIn, 250, nil, mid(t, 2025, 3))
	insertTx(t, models.TypePaymentOut, 100, nil, mid(t, 2025, 3))

	stats, err := GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, 1300.0, stats.TotalIncome)
	assert.Equal(t, 250.0, stats.TotalExpense)
	assert.Equal(t, 900.0, stats.TotalCollected)
	assert.Equal(t, 100.0, stats.TotalPaid)
	assert.Equal(t, 1050.0, stats.NetProfit)
	assert.Equal(t, 800.0, stats.NetCash)

	// Yalnız A'nın pozitif bakiyesi sayılır
	assert.Equal(t, 600.0, stats.TotalReceivables)
	assert.Equal(t, 0.0, stats.TotalPayables)
}

func TestTopDebtorsOrderAndLimit(t *testing.T) {
	setupTestDB(t)

	a := newCompany(t, "Küçük Alacak")
	b := newCompany(t, "Büyük Alacak")
	c := newCompany(t, "Borçsuz")

	insertTx(t, models.TypeInvoiceOut, 100, &a.ID, mid(t, 2025, 1))
	insertTx(t, models.TypeInvoiceOut, 5000, &b.ID, mid(t, 2025, 1))
	insertTx(t, models.TypeInvoiceOut, 200, &c.ID, mid(t, 2025, 1))
	insertTx(t, models.TypePaymentIn, 200, &c.ID, mid(t, 2025, 2))

	rows, err := TopDebtors(5, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Büyük Alacak", rows[0].CompanyName)
	assert.Equal(t, 5000.0, rows[0].Balance)
	assert.Equal(t, "Küçük Alacak", rows[1].CompanyName)

	rows, err = TopDebtors(1, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Büyük Alacak", rows[0].CompanyName)
}

func TestTopDebtorsStartDateFilter(t *testing.T) {
	setupTestDB(t)

	a := newCompany(t, "Eski Alacak")

	insertTx(t, models.TypeInvoiceOut, 1000, &a.ID, mid(t, 2024, 6))
	insertTx(t, models.TypeInvoiceOut, 300, &a.ID, mid(t, 2025, 2))

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	rows, err := TopDebtors(5, &start)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 300.0, rows[0].Balance)
}

func TestMonthlyStatsBucketsByMonth(t *testing.T) {
	setupTestDB(t)

	comp := newCompany(t, "Aylık Cari")

	insertTx(t, models.TypeInvoiceOut, 1000, &comp.ID, mid(t, 2025, 1))
	insertTx(t, models.TypeInvoiceOut, 500, &comp.ID, mid(t, 2025, 1))
	insertTx(t, models.TypeInvoiceIn, 200, nil, mid(t, 2025, 3))
	insertTx(t, models.TypePaymentIn, 700, &comp.ID, mid(t, 2025, 3))
	// Başka yıl hesaba girmez
	insertTx(t, models.TypeInvoiceOut, 9999, &comp.ID, mid(t, 2024, 1))

	months, err := GetMonthlyStats(2025)
	require.NoError(t, err)
	require.Len(t, months, 12)

	assert.Equal(t, 1, months[0].Month)
	assert.Equal(t, 1500.0, months[0].Income)
	assert.Equal(t, 0.0, months[0].Expense)

	assert.Equal(t, 200.0, months[2].Expense)
	assert.Equal(t, 700.0, months[2].Collected)

	// Boş aylar sıfırla döner
	assert.Equal(t, 0.0, months[11].Income)
}

func TestCashFlowCumulativeResetsPerYear(t *testing.T) {
	setupTestDB(t)

	comp := newCompany(t, "Nakit Cari")

	// Ocak +100, Şubat -50, Mart +20
	insertTx(t, models.TypePaymentIn, 100, &comp.ID, mid(t, 2025, 1))
	insertTx(t, models.TypePaymentOut, 50, &comp.ID, mid(t, 2025, 2))
	insertTx(t, models.TypePaymentIn, 20, &comp.ID, mid(t, 2025, 3))
	// Önceki yıldan devir yok
	insertTx(t, models.TypePaymentIn, 8888, &comp.ID, mid(t, 2024, 12))

	months, err := GetCashFlowReport(2025)
	require.NoError(t, err)
	require.Len(t, months, 12)

	assert.Equal(t, 100.0, months[0].NetCash)
	assert.Equal(t, 100.0, months[0].Cumulative)
	assert.Equal(t, -50.0, months[1].NetCash)
	assert.Equal(t, 50.0, months[1].Cumulative)
	assert.Equal(t, 70.0, months[2].Cumulative)
	// Yılın geri kalanı sabit kümülatifle devam eder
	assert.Equal(t, 70.0, months[11].Cumulative)
}

func TestAgingReceivablesBuckets(t *testing.T) {
	setupTestDB(t)

	comp := newCompany(t, "Yaşlı Alacak")
	paid := newCompany(t, "Kapanmış Cari")

	now := time.Now()

	// 45 gün önce kesilen fatura → 31-60 kovası
	insertTx(t, models.TypeInvoiceOut, 1000, &comp.ID, now.AddDate(0, 0, -45))
	// 10 gün önceki tahsilat kendi yaşına göre eksi yazılır → ≤30 kovası
	insertTx(t, models.TypePaymentIn, 300, &comp.ID, now.AddDate(0, 0, -10))
	// 100 gün önceki fatura → >90 kovası
	insertTx(t, models.TypeInvoiceOut, 500, &comp.ID, now.AddDate(0, 0, -100))

	// Toplamı sıfır olan cari listeye girmez
	insertTx(t, models.TypeInvoiceOut, 400, &paid.ID, now.AddDate(0, 0, -20))
	insertTx(t, models.TypePaymentIn, 400, &paid.ID, now.AddDate(0, 0, -5))

	rows, err := GetAgingReceivables()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "Yaşlı Alacak", r.CompanyName)
	assert.Equal(t, -300.0, r.Current)
	assert.Equal(t, 1000.0, r.Days30)
	assert.Equal(t, 0.0, r.Days60)
	assert.Equal(t, 500.0, r.Days90)
	assert.Equal(t, 1200.0, r.Total)
}
