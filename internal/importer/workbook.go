package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/ikkim/storefront/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Sheet names. Each sheet starts with a header row; missing sheets are skipped.
//
//	users:      userID, name, password, latitude, longitude, type
//	stores:     storeID, name, latitude, longitude, managerID, dateEstablished
//	products:   storeID, productName, numberOfUnits, pricePerUnit
//	warehouses: warehouseID, area, latitude, longitude
const (
	SheetUsers      = "users"
	SheetStores     = "stores"
	SheetProducts   = "products"
	SheetWarehouses = "warehouses"
)

const dateLayout = "2006-01-02"

// Dataset is the content of a seed workbook, ready to insert.
type Dataset struct {
	Users      []model.User
	Stores     []model.Store
	Products   []model.Product
	Warehouses []model.Warehouse

	Skipped map[string]int // rows dropped per sheet
}

// Total is the number of rows that will be inserted.
func (d *Dataset) Total() int {
	return len(d.Users) + len(d.Stores) + len(d.Products) + len(d.Warehouses)
}

// ReadFile opens an xlsx workbook and reads every known sheet.
func ReadFile(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func Read(f *excelize.File) (*Dataset, error) {
	d := &Dataset{Skipped: map[string]int{}}

	readers := []struct {
		sheet string
		read  func(row []string) error
	}{
		{SheetUsers, d.addUser},
		{SheetStores, d.addStore},
		{SheetProducts, d.addProduct},
		{SheetWarehouses, d.addWarehouse},
	}

	found := 0
	for _, r := range readers {
		idx, err := f.GetSheetIndex(r.sheet)
		if err != nil || idx < 0 {
			continue
		}
		found++

		rows, err := f.GetRows(r.sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", r.sheet, err)
		}
		for i, row := range rows {
			if i == 0 {
				continue
			}
			if isBlank(row) {
				continue
			}
			if err := r.read(trim(row)); err != nil {
				d.Skipped[r.sheet]++
				logger.Warn("Skipping seed row", map[string]interface{}{
					"sheet":  r.sheet,
					"row":    i + 1,
					"reason": err.Error(),
				})
			}
		}
	}

	if found == 0 {
		return nil, fmt.Errorf("no %s, %s, %s or %s sheet found", SheetUsers, SheetStores, SheetProducts, SheetWarehouses)
	}
	return d, nil
}

func (d *Dataset) addUser(row []string) error {
	if len(row) < 6 {
		return fmt.Errorf("expected 6 columns, got %d", len(row))
	}
	id, err := parseID(row[0])
	if err != nil {
		return err
	}
	if r := validation.Name(row[1]); !r.OK() {
		return fmt.Errorf("name: %s", r.Message)
	}
	if r := validation.Password(row[2]); !r.OK() {
		return fmt.Errorf("password: %s", validation.MsgPasswordLength)
	}
	lat := validation.Latitude(row[3])
	if !lat.OK() {
		return fmt.Errorf("latitude %q is out of range", row[3])
	}
	lon := validation.Longitude(row[4])
	if !lon.OK() {
		return fmt.Errorf("longitude %q is out of range", row[4])
	}
	role := model.UserRole(strings.ToLower(row[5]))
	if !role.Valid() {
		return fmt.Errorf("unknown user type %q", row[5])
	}

	hash, err := util.HashPassword(row[2])
	if err != nil {
		return err
	}
	d.Users = append(d.Users, model.User{
		ID:           id,
		Name:         row[1],
		PasswordHash: hash,
		Latitude:     lat.Value,
		Longitude:    lon.Value,
		Role:         role,
	})
	return nil
}

func (d *Dataset) addStore(row []string) error {
	if len(row) < 5 {
		return fmt.Errorf("expected at least 5 columns, got %d", len(row))
	}
	id, err := parseID(row[0])
	if err != nil {
		return err
	}
	lat, lon, err := parseCoordinates(row[2], row[3])
	if err != nil {
		return err
	}
	managerID, err := parseID(row[4])
	if err != nil {
		return fmt.Errorf("manager: %w", err)
	}

	store := model.Store{
		ID:        id,
		Name:      row[1],
		ManagerID: managerID,
		Latitude:  lat,
		Longitude: lon,
	}
	if len(row) > 5 && row[5] != "" {
		established, err := time.Parse(dateLayout, row[5])
		if err != nil {
			return fmt.Errorf("date established %q: want YYYY-MM-DD", row[5])
		}
		store.DateEstablished = established
	}
	d.Stores = append(d.Stores, store)
	return nil
}

func (d *Dataset) addProduct(row []string) error {
	if len(row) < 4 {
		return fmt.Errorf("expected 4 columns, got %d", len(row))
	}
	storeID, err := parseID(row[0])
	if err != nil {
		return err
	}
	name := validation.ProductName(row[1])
	if !name.OK() {
		return fmt.Errorf("product name %q is empty or too long", row[1])
	}
	units := validation.ParseCount(row[2])
	if !units.OK() {
		return fmt.Errorf("number of units %q is not a count", row[2])
	}
	price := validation.ParsePrice(row[3])
	if !price.OK() {
		return fmt.Errorf("price %q is not a price", row[3])
	}

	d.Products = append(d.Products, model.Product{
		StoreID:       storeID,
		ProductName:   name.Value,
		NumberOfUnits: units.Value,
		PricePerUnit:  price.Value,
	})
	return nil
}

func (d *Dataset) addWarehouse(row []string) error {
	if len(row) < 4 {
		return fmt.Errorf("expected 4 columns, got %d", len(row))
	}
	id, err := parseID(row[0])
	if err != nil {
		return err
	}
	area, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return fmt.Errorf("area %q is not a number", row[1])
	}
	lat, lon, err := parseCoordinates(row[2], row[3])
	if err != nil {
		return err
	}

	d.Warehouses = append(d.Warehouses, model.Warehouse{
		ID:        id,
		Area:      area,
		Latitude:  lat,
		Longitude: lon,
	})
	return nil
}

// Load inserts the dataset in one transaction, parents before children.
func (d *Dataset) Load(repos *repository.Repositories, batchSize int) error {
	return repos.Transaction(func(tx *repository.Repositories) error {
		for i := range d.Users {
			if err := tx.Users.Create(&d.Users[i]); err != nil {
				return fmt.Errorf("user %s: %w", d.Users[i].Name, err)
			}
		}
		if err := tx.Stores.BulkCreate(d.Stores, batchSize); err != nil {
			return fmt.Errorf("stores: %w", err)
		}
		if err := tx.Products.BulkCreate(d.Products, batchSize); err != nil {
			return fmt.Errorf("products: %w", err)
		}
		if err := tx.Warehouses.CreateBatch(d.Warehouses); err != nil {
			return fmt.Errorf("warehouses: %w", err)
		}
		return nil
	})
}

func parseID(s string) (uint, error) {
	r := validation.ParseID(s)
	if !r.OK() || r.Value == 0 {
		return 0, fmt.Errorf("id %q is not a positive number", s)
	}
	return r.Value, nil
}

// parseCoordinates accepts any in-range decimal; spreadsheet values often carry
// more than six fractional digits.
func parseCoordinates(latStr, lonStr string) (float64, float64, error) {
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		return 0, 0, fmt.Errorf("coordinates %q, %q are not numbers", latStr, lonStr)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("coordinates %v, %v are out of range", lat, lon)
	}
	return lat, lon, nil
}

func trim(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
