package report

import (
	"fmt"
	"io"
	"time"

	"github.com/ikkim/storefront/internal/app/service"
	"github.com/xuri/excelize/v2"
)

// Sheet names of a manager report workbook.
const (
	SheetSummary   = "Summary"
	SheetStores    = "Stores"
	SheetItems     = "Popular Items"
	SheetCustomers = "Popular Customers"
	SheetUpdates   = "Recent Updates"
)

const timeLayout = "2006-01-02 15:04:05"

// Build lays the report out as one sheet per section.
func Build(r *service.ManagerReport, generatedAt time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	summary := [][]interface{}{
		{"Manager ID", r.Manager.ID},
		{"Manager", r.Manager.Name},
		{"Stores managed", len(r.Stores)},
		{"Generated at", generatedAt.UTC().Format(timeLayout)},
	}
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}

	stores := [][]interface{}{{"storeID", "name", "latitude", "longitude"}}
	for _, s := range r.Stores {
		stores = append(stores, []interface{}{s.ID, s.Name, s.Latitude, s.Longitude})
	}

	items := [][]interface{}{{"productName", "order_count"}}
	for _, p := range r.PopularProducts {
		items = append(items, []interface{}{p.ProductName, p.OrderCount})
	}

	customers := [][]interface{}{{"customerID", "name", "latitude", "longitude", "order_count"}}
	for _, c := range r.PopularCustomers {
		customers = append(customers, []interface{}{c.CustomerID, c.Name, c.Latitude, c.Longitude, c.OrderCount})
	}

	updates := [][]interface{}{{"updateNumber", "managerID", "storeID", "productName", "updatedOn"}}
	for _, u := range r.RecentUpdates {
		updates = append(updates, []interface{}{u.ID, u.ManagerID, u.StoreID, u.ProductName, u.UpdatedOn.UTC().Format(timeLayout)})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summary},
		{SheetStores, stores},
		{SheetItems, items},
		{SheetCustomers, customers},
		{SheetUpdates, updates},
	}
	for i, sheet := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(sheet.name); err != nil {
				f.Close()
				return nil, err
			}
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %s: %w", sheet.name, err)
		}
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, r *service.ManagerReport, generatedAt time.Time) error {
	f, err := Build(r, generatedAt)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// FileName is the default file name for a manager's report.
func FileName(managerID uint, generatedAt time.Time) string {
	return fmt.Sprintf("manager-%d-report-%s.xlsx", managerID, generatedAt.UTC().Format("20060102-150405"))
}
