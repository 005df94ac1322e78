package report

import (
	"time"

	"garage-backend/internal/database"
	"garage-backend/internal/ledger"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RevenueChartPoint struct {
	Month   string          `json:"month"` // "2006-01"
	Revenue decimal.Decimal `json:"revenue"`
}

// GET /api/dashboard/stats
func DashboardStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var totalCars, totalOwners, activeJobs, completedJobs int64
		database.DB.Model(&models.Car{}).Count(&totalCars)
		database.DB.Model(&models.Owner{}).Count(&totalOwners)
		database.DB.Model(&models.ServiceJob{}).Where("status = ?", models.JobStatusInProgress).Count(&activeJobs)
		database.DB.Model(&models.ServiceJob{}).Where("status = ?", models.JobStatusCompleted).Count(&completedJobs)

		var payments []models.Transaction
		if err := database.DB.Where("type = ?", models.TransactionTypePayment).Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load payments")
		}

		monthStart := time.Now().Truncate(24 * time.Hour)
		monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, monthStart.Location())

		totalRevenue := decimal.Zero
		monthlyRevenue := decimal.Zero
		for _, p := range payments {
			totalRevenue = totalRevenue.Add(p.Amount)
			if !p.Date.Before(monthStart) {
				monthlyRevenue = monthlyRevenue.Add(p.Amount)
			}
		}

		var owners []models.Owner
		if err := database.DB.Preload("Transactions").Find(&owners).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load owners")
		}
		totalOutstanding := decimal.Zero
		for _, o := range owners {
			totalOutstanding = totalOutstanding.Add(ledger.Balance(o.Transactions))
		}

		var recentJobs []models.ServiceJob
		database.DB.Preload("Car").Order("created_at desc").Limit(5).Find(&recentJobs)
		jobs := make([]fiber.Map, 0, len(recentJobs))
		for _, j := range recentJobs {
			jobs = append(jobs, fiber.Map{
				"id":            j.ID,
				"license_plate": j.Car.LicensePlate,
				"date_in":       j.DateIn.Format("2006-01-02"),
				"status":        j.Status,
			})
		}

		var recentTxns []models.Transaction
		database.DB.Order("created_at desc").Limit(5).Find(&recentTxns)
		txns := make([]fiber.Map, 0, len(recentTxns))
		for _, t := range recentTxns {
			txns = append(txns, fiber.Map{
				"id":          t.ID,
				"amount":      t.Amount,
				"type":        t.Type,
				"description": t.Description,
				"date":        t.Date.Format("2006-01-02"),
			})
		}

		return c.JSON(fiber.Map{
			"total_cars":          totalCars,
			"total_owners":        totalOwners,
			"active_jobs":         activeJobs,
			"completed_jobs":      completedJobs,
			"total_revenue":       totalRevenue,
			"total_outstanding":   totalOutstanding,
			"monthly_revenue":     monthlyRevenue,
			"recent_jobs":         jobs,
			"recent_transactions": txns,
		})
	}
}

// GET /api/dashboard/revenue-chart
//
// Payments of the last six months bucketed by calendar month. Bucketing
// happens in Go so the query stays portable across SQLite and Postgres.
func RevenueChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		since := time.Now().AddDate(0, -6, 0)

		var payments []models.Transaction
		err := database.DB.
			Where("type = ? AND date >= ?", models.TransactionTypePayment, since).
			Order("date asc").
			Find(&payments).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load payments")
		}

		byMonth := map[string]decimal.Decimal{}
		var order []string
		for _, p := range payments {
			key := p.Date.Format("2006-01")
			if _, ok := byMonth[key]; !ok {
				order = append(order, key)
			}
			byMonth[key] = byMonth[key].Add(p.Amount)
		}

		points := make([]RevenueChartPoint, 0, len(order))
		for _, key := range order {
			points = append(points, RevenueChartPoint{Month: key, Revenue: byMonth[key]})
		}

		return c.JSON(fiber.Map{"revenue_chart": points})
	}
}

// GET /api/reports/outstanding-balances
func OutstandingBalancesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var owners []models.Owner
		if err := database.DB.Preload("Transactions").Order("name asc").Find(&owners).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load owners")
		}

		total := decimal.Zero
		res := make([]fiber.Map, 0)
		for _, o := range owners {
			balance := ledger.Balance(o.Transactions)
			if !balance.IsPositive() {
				continue
			}
			total = total.Add(balance)
			res = append(res, fiber.Map{
				"id":      o.ID,
				"name":    o.Name,
				"phone":   o.Phone,
				"balance": balance,
			})
		}

		return c.JSON(fiber.Map{
			"owners":            res,
			"total_outstanding": total,
		})
	}
}

// GET /api/reports/recent-payments
func RecentPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		since := time.Now().AddDate(0, 0, -30)

		var payments []models.Transaction
		err := database.DB.
			Where("type = ? AND date >= ?", models.TransactionTypePayment, since).
			Order("date desc").
			Find(&payments).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load payments")
		}

		total := decimal.Zero
		res := make([]fiber.Map, 0, len(payments))
		for _, p := range payments {
			total = total.Add(p.Amount)
			res = append(res, fiber.Map{
				"id":          p.ID,
				"owner_id":    p.OwnerID,
				"amount":      p.Amount,
				"date":        p.Date.Format("2006-01-02"),
				"description": p.Description,
			})
		}

		return c.JSON(fiber.Map{
			"payments":       res,
			"total_received": total,
		})
	}
}

// GET /api/reports/active-jobs
func ActiveJobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var jobs []models.ServiceJob
		err := database.DB.
			Preload("Car").
			Preload("ServiceItems").
			Where("status = ?", models.JobStatusInProgress).
			Find(&jobs).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load jobs")
		}

		totalQuoted := decimal.Zero
		totalDays := 0
		res := make([]fiber.Map, 0, len(jobs))
		for _, j := range jobs {
			quoted := ledger.QuotedCost(j.ServiceItems)
			totalQuoted = totalQuoted.Add(quoted)
			days := int(time.Since(j.DateIn).Hours() / 24)
			totalDays += days
			res = append(res, fiber.Map{
				"id":            j.ID,
				"license_plate": j.Car.LicensePlate,
				"date_in":       j.DateIn.Format("2006-01-02"),
				"days_in_shop":  days,
				"quoted_cost":   quoted,
			})
		}

		averageDays := 0
		if len(jobs) > 0 {
			averageDays = totalDays / len(jobs)
		}

		return c.JSON(fiber.Map{
			"jobs":         res,
			"total_quoted": totalQuoted,
			"average_days": averageDays,
		})
	}
}

// GET /api/reports/service-history
func ServiceHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var jobs []models.ServiceJob
		err := database.DB.
			Preload("Car").
			Preload("ServiceItems").
			Order("date_in desc").
			Find(&jobs).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load jobs")
		}

		completed := 0
		inProgress := 0
		totalServices := 0
		totalRevenue := decimal.Zero
		res := make([]fiber.Map, 0, len(jobs))
		for _, j := range jobs {
			totalServices += len(j.ServiceItems)
			total := ledger.TotalCost(j.ServiceItems)
			switch j.Status {
			case models.JobStatusCompleted:
				completed++
				totalRevenue = totalRevenue.Add(total)
			case models.JobStatusInProgress:
				inProgress++
			}
			res = append(res, fiber.Map{
				"id":            j.ID,
				"license_plate": j.Car.LicensePlate,
				"date_in":       j.DateIn.Format("2006-01-02"),
				"status":        j.Status,
				"total_cost":    total,
			})
		}

		averageJobValue := decimal.Zero
		if completed > 0 {
			averageJobValue = totalRevenue.DivRound(decimal.NewFromInt(int64(completed)), 2)
		}

		return c.JSON(fiber.Map{
			"jobs":              res,
			"completed_jobs":    completed,
			"in_progress_jobs":  inProgress,
			"total_services":    totalServices,
			"total_revenue":     totalRevenue,
			"average_job_value": averageJobValue,
		})
	}
}
