package analytics

import (
	"sort"
	"time"

	"insaat-backend/internal/database"
	"insaat-backend/internal/models"
)

// Tüm çıktılar her çağrıda canlı defterden yeniden hesaplanır; hiçbir şey
// cache'lenmez, sonuç her zaman son commit ile tutarlıdır.

type DashboardStats struct {
	TotalIncome      float64 `json:"total_income"`      // Σ invoice_out
	TotalExpense     float64 `json:"total_expense"`     // Σ invoice_in
	TotalCollected   float64 `json:"total_collected"`   // Σ payment_in
	TotalPaid        float64 `json:"total_paid"`        // Σ payment_out
	NetProfit        float64 `json:"net_profit"`
	NetCash          float64 `json:"net_cash"`
	TotalReceivables float64 `json:"total_receivables"` // yalnız pozitif cari bakiyeler
	TotalPayables    float64 `json:"total_payables"`
}

type CompanyBalance struct {
	CompanyID   uint    `json:"company_id"`
	CompanyName string  `json:"company_name"`
	Balance     float64 `json:"balance"`
}

type MonthlyStat struct {
	Month     int     `json:"month"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	Collected float64 `json:"collected"`
	Paid      float64 `json:"paid"`
}

type CashFlowMonth struct {
	Month      int     `json:"month"`
	Collected  float64 `json:"collected"`
	Paid       float64 `json:"paid"`
	NetCash    float64 `json:"net_cash"`
	Cumulative float64 `json:"cumulative"`
}

type AgingRow struct {
	CompanyID   uint    `json:"company_id"`
	CompanyName string  `json:"company_name"`
	Current     float64 `json:"current"` // yaş ≤ 30 gün
	Days30      float64 `json:"days30"`  // 31-60
	Days60      float64 `json:"days60"`  // 61-90
	Days90      float64 `json:"days90"`  // > 90
	Total       float64 `json:"total"`
}

func GetDashboardStats() (*DashboardStats, error) {
	type typeTotal struct {
		Type  string  `gorm:"column:type"`
		Total float64 `gorm:"column:total"`
	}
	var totals []typeTotal

	if err := database.DB.Model(&models.Transaction{}).
		Select("type, IFNULL(SUM(amount_try), 0) as total").
		Group("type").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	for _, t := range totals {
		switch models.TransactionType(t.Type) {
		case models.TypeInvoiceOut:
			stats.TotalIncome = t.Total
		case models.TypeInvoiceIn:
			stats.TotalExpense = t.Total
		case models.TypePaymentIn:
			stats.TotalCollected = t.Total
		case models.TypePaymentOut:
			stats.TotalPaid = t.Total
		}
	}

	stats.NetProfit = stats.TotalIncome - stats.TotalExpense
	stats.NetCash = stats.TotalCollected - stats.TotalPaid

	// Cari bazında bakiye; negatif bakiyeli cari toplamı düşürmez, sıfır sayılır
	receivables, err := companyBalances(models.TypeInvoiceOut, models.TypePaymentIn, nil)
	if err != nil {
		return nil, err
	}
	for _, b := range receivables {
		if b.Balance > 0 {
			stats.TotalReceivables += b.Balance
		}
	}

	payables, err := companyBalances(models.TypeInvoiceIn, models.TypePaymentOut, nil)
	if err != nil {
		return nil, err
	}
	for _, b := range payables {
		if b.Balance > 0 {
			stats.TotalPayables += b.Balance
		}
	}

	return stats, nil
}

// companyBalances - cari başına Σ(plus) − Σ(minus), opsiyonel başlangıç tarihi
func companyBalances(plus, minus models.TransactionType, startDate *time.Time) ([]CompanyBalance, error) {
	sql := `
		SELECT t.company_id, c.name AS company_name,
		       SUM(CASE WHEN t.type = ? THEN t.amount_try
		                WHEN t.type = ? THEN -t.amount_try
		                ELSE 0 END) AS balance
		FROM transactions t
		JOIN companies c ON c.id = t.company_id
		WHERE t.company_id IS NOT NULL`
	args := []interface{}{plus, minus}

	if startDate != nil {
		sql += " AND t.date >= ?"
		args = append(args, *startDate)
	}

	sql += " GROUP BY t.company_id, c.name"

	var rows []CompanyBalance
	if err := database.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// TopDebtors - en yüksek alacak bakiyeli cariler
func TopDebtors(limit int, startDate *time.Time) ([]CompanyBalance, error) {
	return topBalances(models.TypeInvoiceOut, models.TypePaymentIn, limit, startDate)
}

// TopCreditors - en yüksek borç bakiyeli cariler
func TopCreditors(limit int, startDate *time.Time) ([]CompanyBalance, error) {
	return topBalances(models.TypeInvoiceIn, models.TypePaymentOut, limit, startDate)
}

func topBalances(plus, minus models.TransactionType, limit int, startDate *time.Time) ([]CompanyBalance, error) {
	rows, err := companyBalances(plus, minus, startDate)
	if err != nil {
		return nil, err
	}

	positive := make([]CompanyBalance, 0, len(rows))
	for _, r := range rows {
		if r.Balance > 0 {
			positive = append(positive, r)
		}
	}

	sort.Slice(positive, func(i, j int) bool {
		return positive[i].Balance > positive[j].Balance
	})

	if limit > 0 && len(positive) > limit {
		positive = positive[:limit]
	}

	return positive, nil
}

// yearRows - bir yılın işlemlerini çeker; ay bazlı toplama Go tarafında yapılır
func yearRows(year int) ([]models.Transaction, error) {
	loc := time.Now().Location()
	start := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(1, 0, 0)

	var txs []models.Transaction
	if err := database.DB.
		Where("date >= ? AND date < ?", start, end).
		Find(&txs).Error; err != nil {
		return nil, err
	}

	return txs, nil
}

// GetMonthlyStats - yılın 12 ayı için gelir/gider/tahsilat/ödeme
func GetMonthlyStats(year int) ([]MonthlyStat, error) {
	txs, err := yearRows(year)
	if err != nil {
		return nil, err
	}

	months := make([]MonthlyStat, 12)
	for i := range months {
		months[i].Month = i + 1
	}

	for _, tx := range txs {
		m := &months[int(tx.Date.Month())-1]
		switch tx.Type {
		case models.TypeInvoiceOut:
			m.Income += tx.AmountTRY
		case models.TypeInvoiceIn:
			m.Expense += tx.AmountTRY
		case models.TypePaymentIn:
			m.Collected += tx.AmountTRY
		case models.TypePaymentOut:
			m.Paid += tx.AmountTRY
		}
	}

	return months, nil
}

// GetCashFlowReport - aylık tahsilat/ödeme ve yıl içi kümülatif net nakit.
// Kümülatif her yılın başında sıfırdan başlar, önceki yıldan devir yoktur.
func GetCashFlowReport(year int) ([]CashFlowMonth, error) {
	txs, err := yearRows(year)
	if err != nil {
		return nil, err
	}

	months := make([]CashFlowMonth, 12)
	for i := range months {
		months[i].Month = i + 1
	}

	for _, tx := range txs {
		m := &months[int(tx.Date.Month())-1]
		switch tx.Type {
		case models.TypePaymentIn:
			m.Collected += tx.AmountTRY
		case models.TypePaymentOut:
			m.Paid += tx.AmountTRY
		}
	}

	cumulative := 0.0
	for i := range months {
		months[i].NetCash = months[i].Collected - months[i].Paid
		cumulative += months[i].NetCash
		months[i].Cumulative = cumulative
	}

	return months, nil
}

// GetAgingReceivables - cari başına alacak yaşlandırması. Her satır kendi
// tarihine göre kovalanır: fatura artı, tahsilat eksi yazılır; tahsilat
// kapattığı faturayla eşleştirilmez. Toplamı pozitif olmayan cariler elenir.
func GetAgingReceivables() ([]AgingRow, error) {
	type row struct {
		CompanyID   uint                   `gorm:"column:company_id"`
		CompanyName string                 `gorm:"column:company_name"`
		Type        models.TransactionType `gorm:"column:type"`
		Date        time.Time              `gorm:"column:date"`
		AmountTRY   float64                `gorm:"column:amount_try"`
	}
	var rows []row

	if err := database.DB.Raw(`
		SELECT t.company_id, c.name AS company_name, t.type, t.date, t.amount_try
		FROM transactions t
		JOIN companies c ON c.id = t.company_id
		WHERE t.company_id IS NOT NULL AND t.type IN (?, ?)`,
		models.TypeInvoiceOut, models.TypePaymentIn).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	byCompany := make(map[uint]*AgingRow)

	for _, r := range rows {
		agg, ok := byCompany[r.CompanyID]
		if !ok {
			agg = &AgingRow{CompanyID: r.CompanyID, CompanyName: r.CompanyName}
			byCompany[r.CompanyID] = agg
		}

		amount := r.AmountTRY
		if r.Type == models.TypePaymentIn {
			amount = -amount
		}

		age := int(today.Sub(r.Date).Hours() / 24)
		switch {
		case age <= 30:
			agg.Current += amount
		case age <= 60:
			agg.Days30 += amount
		case age <= 90:
			agg.Days60 += amount
		default:
			agg.Days90 += amount
		}
	}

	result := make([]AgingRow, 0, len(byCompany))
	for _, agg := range byCompany {
		agg.Total = agg.Current + agg.Days30 + agg.Days60 + agg.Days90
		if agg.Total > 0 {
			result = append(result, *agg)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})

	return result, nil
}
