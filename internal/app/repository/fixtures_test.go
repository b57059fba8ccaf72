package repository

import (
	"testing"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) (*gorm.DB, *Repositories) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB, NewRepositories(testDB)
}

func createUser(t *testing.T, testDB *gorm.DB, name string, role model.UserRole, lat, lon float64) *model.User {
	user := &model.User{
		Name:         name,
		PasswordHash: "hash",
		Latitude:     lat,
		Longitude:    lon,
		Role:         role,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createStore(t *testing.T, testDB *gorm.DB, managerID uint, lat, lon float64) *model.Store {
	store := &model.Store{
		ManagerID: managerID,
		Latitude:  lat,
		Longitude: lon,
	}
	require.NoError(t, testDB.Create(store).Error)
	return store
}

func createProduct(t *testing.T, testDB *gorm.DB, storeID uint, name string, units int, price float64) *model.Product {
	product := &model.Product{
		StoreID:       storeID,
		ProductName:   name,
		NumberOfUnits: units,
		PricePerUnit:  price,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}
