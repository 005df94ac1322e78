package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"garage-backend/internal/database"
	"garage-backend/internal/ledger"
	"garage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type row []interface{}

type table struct {
	header []string
	rows   []row
}

// GET /api/export/customers?format=csv|xlsx
func CustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var owners []models.Owner
		if err := database.DB.Preload("Transactions").Order("name asc").Find(&owners).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load owners")
		}

		t := table{header: []string{"Name", "Phone", "Email", "Address", "Balance"}}
		for _, o := range owners {
			t.rows = append(t.rows, row{
				o.Name, o.Phone, o.Email, o.Address,
				ledger.Balance(o.Transactions).StringFixed(2),
			})
		}

		return writeExport(c, t, "customers_export")
	}
}

// GET /api/export/jobs?format=csv|xlsx
func JobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var jobs []models.ServiceJob
		err := database.DB.Preload("Car").Preload("ServiceItems").Order("date_in desc").Find(&jobs).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load jobs")
		}

		t := table{header: []string{"Job ID", "License Plate", "Date In", "Date Out", "Status", "Total Cost"}}
		for _, j := range jobs {
			dateOut := ""
			if j.DateOut != nil {
				dateOut = j.DateOut.Format("2006-01-02")
			}
			t.rows = append(t.rows, row{
				strconv.FormatUint(uint64(j.ID), 10),
				j.Car.LicensePlate,
				j.DateIn.Format("2006-01-02"),
				dateOut,
				string(j.Status),
				ledger.TotalCost(j.ServiceItems).StringFixed(2),
			})
		}

		return writeExport(c, t, "jobs_export")
	}
}

func writeExport(c *fiber.Ctx, t table, baseName string) error {
	name := fmt.Sprintf("%s_%s", baseName, time.Now().Format("2006-01-02"))

	switch c.Query("format", "csv") {
	case "csv":
		data, err := renderCSV(t)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build CSV export")
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name+".csv"))
		return c.Send(data)

	case "xlsx":
		data, err := renderXLSX(t)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build XLSX export")
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
		return c.Send(data)

	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be 'csv' or 'xlsx'")
	}
}

func renderCSV(t table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.header); err != nil {
		return nil, err
	}
	for _, r := range t.rows {
		record := make([]string, len(r))
		for i, v := range r {
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func renderXLSX(t table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range t.header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for rowIdx, r := range t.rows {
		for colIdx, v := range r {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
