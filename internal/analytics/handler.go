package analytics

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

func parseYear(c *fiber.Ctx) (int, error) {
	yearStr := c.Query("year")
	if yearStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "year zorunlu")
	}

	var year int
	if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
	}

	return year, nil
}

func parseTopQuery(c *fiber.Ctx) (int, *time.Time, error) {
	limit := 5
	if s := c.Query("limit"); s != "" {
		if _, err := fmt.Sscan(s, &limit); err != nil || limit <= 0 {
			return 0, nil, fiber.NewError(fiber.StatusBadRequest, "limit geçersiz")
		}
	}

	var startDate *time.Time
	if s := c.Query("start_date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return 0, nil, fiber.NewError(fiber.StatusBadRequest, "start_date geçersiz")
		}
		startDate = &d
	}

	return limit, startDate, nil
}

// GET /api/analytics/dashboard
func DashboardStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := GetDashboardStats()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		return c.JSON(stats)
	}
}

// GET /api/analytics/top-debtors?limit=5&start_date=2025-01-01
func TopDebtorsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, startDate, err := parseTopQuery(c)
		if err != nil {
			return err
		}

		rows, err := TopDebtors(limit, startDate)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Borçlular hesaplanamadı")
		}

		return c.JSON(rows)
	}
}

// GET /api/analytics/top-creditors?limit=5&start_date=2025-01-01
func TopCreditorsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, startDate, err := parseTopQuery(c)
		if err != nil {
			return err
		}

		rows, err := TopCreditors(limit, startDate)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alacaklılar hesaplanamadı")
		}

		return c.JSON(rows)
	}
}

// GET /api/analytics/monthly?year=2025
func MonthlyStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := parseYear(c)
		if err != nil {
			return err
		}

		months, err := GetMonthlyStats(year)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aylık özet hesaplanamadı")
		}

		return c.JSON(fiber.Map{"year": year, "months": months})
	}
}

// GET /api/analytics/cash-flow?year=2025
func CashFlowHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := parseYear(c)
		if err != nil {
			return err
		}

		months, err := GetCashFlowReport(year)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Nakit akışı hesaplanamadı")
		}

		return c.JSON(fiber.Map{"year": year, "months": months})
	}
}

// GET /api/analytics/aging-receivables
func AgingReceivablesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := GetAgingReceivables()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yaşlandırma hesaplanamadı")
		}

		return c.JSON(rows)
	}
}
