package importer

import (
	"path/filepath"
	"testing"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/db"
	"github.com/ikkim/storefront/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	util.PasswordCost = bcrypt.MinCost
	m.Run()
}

func writeSheet(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
}

func seedWorkbook(t *testing.T) *excelize.File {
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	writeSheet(t, f, SheetUsers, [][]interface{}{
		{"userID", "name", "password", "latitude", "longitude", "type"},
		{"1", "mgr", "secret", "10.5", "-20.25", "manager"},
		{"2", "cust", "pw1", "11", "-20", "Customer"},
		{"3", "bad", "x", "0", "0", "customer"},     // password too short
		{"4", "worse", "secret", "0", "0", "owner"}, // unknown type
	})
	writeSheet(t, f, SheetStores, [][]interface{}{
		{"storeID", "name", "latitude", "longitude", "managerID", "dateEstablished"},
		{"1", "Downtown", "10.123456789", "-20", "1", "2019-04-01"},
		{"2", "Uptown", "12", "-21", "1", ""},
		{"3", "Nowhere", "100", "0", "1", ""},
		{},
	})
	writeSheet(t, f, SheetProducts, [][]interface{}{
		{"storeID", "productName", "numberOfUnits", "pricePerUnit"},
		{"1", "widget", "5", "2.50"},
		{"2", "widget", "0", "3"},
		{"2", "gadget", "-1", "3"},
	})
	writeSheet(t, f, SheetWarehouses, [][]interface{}{
		{"warehouseID", "area", "latitude", "longitude"},
		{"1", "50000", "34.05", "-118.24"},
	})
	return f
}

func TestRead(t *testing.T) {
	d, err := Read(seedWorkbook(t))
	require.NoError(t, err)

	require.Len(t, d.Users, 2)
	assert.Equal(t, "mgr", d.Users[0].Name)
	assert.Equal(t, model.RoleManager, d.Users[0].Role)
	assert.Equal(t, model.RoleCustomer, d.Users[1].Role)
	assert.True(t, util.VerifyPassword(d.Users[0].PasswordHash, "secret"))

	require.Len(t, d.Stores, 2)
	assert.Equal(t, uint(1), d.Stores[0].ID)
	assert.Equal(t, 10.123456789, d.Stores[0].Latitude)
	assert.Equal(t, 2019, d.Stores[0].DateEstablished.Year())
	assert.True(t, d.Stores[1].DateEstablished.IsZero())

	require.Len(t, d.Products, 2)
	assert.Len(t, d.Warehouses, 1)
	assert.Equal(t, 7, d.Total())

	assert.Equal(t, 2, d.Skipped[SheetUsers])
	assert.Equal(t, 1, d.Skipped[SheetStores])
	assert.Equal(t, 1, d.Skipped[SheetProducts])
	assert.Zero(t, d.Skipped[SheetWarehouses])
}

func TestRead_NoKnownSheets(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := Read(f)
	assert.Error(t, err)
}

func TestReadFileAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.xlsx")
	require.NoError(t, seedWorkbook(t).SaveAs(path))

	d, err := ReadFile(path)
	require.NoError(t, err)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, d.Load(repository.NewRepositories(testDB), 1))

	for table, want := range map[interface{}]int64{
		&model.User{}:      2,
		&model.Store{}:     2,
		&model.Product{}:   2,
		&model.Warehouse{}: 1,
	} {
		var n int64
		require.NoError(t, testDB.Model(table).Count(&n).Error)
		assert.Equal(t, want, n)
	}
	require.NoError(t, db.ResetSequences(testDB))

	var widget model.Product
	require.NoError(t, testDB.Where("store_id = ? AND product_name = ?", 1, "widget").First(&widget).Error)
	assert.Equal(t, 5, widget.NumberOfUnits)
	assert.Equal(t, 2.5, widget.PricePerUnit)
}

func TestLoad_RollsBackOnConflict(t *testing.T) {
	d, err := Read(seedWorkbook(t))
	require.NoError(t, err)
	d.Products = append(d.Products, d.Products[0])

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	assert.Error(t, d.Load(repository.NewRepositories(testDB), 10))

	var n int64
	require.NoError(t, testDB.Model(&model.User{}).Count(&n).Error)
	assert.Zero(t, n)
}
