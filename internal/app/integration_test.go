//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/db"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type testEnv struct {
	DB       *gorm.DB
	Repos    *repository.Repositories
	Services *service.Services
}

// setupIntegrationTest starts a PostgreSQL container and migrates it.
func setupIntegrationTest(t *testing.T) *testEnv {
	ctx := context.Background()
	logger.Initialize(logger.Config{Level: "disabled"})

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := db.Open(connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, db.MigrateDB(conn))

	repos := repository.NewRepositories(conn)
	return &testEnv{DB: conn, Repos: repos, Services: service.New(repos)}
}

func TestIntegration_OrderFlow(t *testing.T) {
	env := setupIntegrationTest(t)

	var warehouses int64
	require.NoError(t, env.DB.Model(&model.Warehouse{}).Count(&warehouses).Error)
	assert.Equal(t, int64(5), warehouses)

	customer, err := env.Services.Auth.Register("customer", "secret", 1, 1)
	require.NoError(t, err)
	manager, err := env.Services.Auth.Register("manager", "secret", 0, 0)
	require.NoError(t, err)
	require.NoError(t, env.DB.Model(manager).Update("role", model.RoleManager).Error)

	store := &model.Store{ManagerID: manager.ID, Latitude: 2, Longitude: 2}
	require.NoError(t, env.DB.Create(store).Error)
	require.NoError(t, env.DB.Create(&model.Product{
		StoreID: store.ID, ProductName: "widget", NumberOfUnits: 5, PricePerUnit: 2.5,
	}).Error)

	t.Run("order decrements stock", func(t *testing.T) {
		order, err := env.Services.Orders.PlaceOrder(customer.ID, store.ID, "widget", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, order.UnitsOrdered)

		products, err := env.Services.Stores.ListProducts(store.ID)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, 2, products[0].NumberOfUnits)
	})

	t.Run("insufficient stock rolls back", func(t *testing.T) {
		_, err := env.Services.Orders.PlaceOrder(customer.ID, store.ID, "widget", 3)
		assert.ErrorIs(t, err, service.ErrInsufficientStock)

		var orders int64
		require.NoError(t, env.DB.Model(&model.Order{}).Count(&orders).Error)
		assert.Equal(t, int64(1), orders)
	})

	t.Run("analytics see the order", func(t *testing.T) {
		report, err := env.Services.Analytics.Report(manager.ID)
		require.NoError(t, err)
		require.Len(t, report.PopularProducts, 1)
		assert.Equal(t, "widget", report.PopularProducts[0].ProductName)
		require.Len(t, report.PopularCustomers, 1)
		assert.Equal(t, customer.ID, report.PopularCustomers[0].CustomerID)
	})
}

func TestIntegration_ProductUpdateAudit(t *testing.T) {
	env := setupIntegrationTest(t)

	manager, err := env.Services.Auth.Register("manager", "secret", 0, 0)
	require.NoError(t, err)
	require.NoError(t, env.DB.Model(manager).Update("role", model.RoleManager).Error)
	store := &model.Store{ManagerID: manager.ID}
	require.NoError(t, env.DB.Create(store).Error)
	require.NoError(t, env.DB.Create(&model.Product{
		StoreID: store.ID, ProductName: "widget", NumberOfUnits: 5, PricePerUnit: 2.5,
	}).Error)

	units, price := 9, 3.75
	result, err := env.Services.Products.UpdateProduct(manager.ID, store.ID, "widget", service.ProductChanges{
		Units: &units,
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, result.Product.NumberOfUnits)
	assert.Equal(t, 3.75, result.Product.PricePerUnit)
	assert.NotEmpty(t, result.AuditRows)

	updates, err := env.Services.Products.RecentUpdates(manager.ID)
	require.NoError(t, err)
	assert.Len(t, updates, len(result.AuditRows))
}

func TestIntegration_ResetSequences(t *testing.T) {
	env := setupIntegrationTest(t)

	manager, err := env.Services.Auth.Register("manager", "secret", 0, 0)
	require.NoError(t, err)

	require.NoError(t, env.Repos.Stores.BulkCreate([]model.Store{
		{ID: 10, ManagerID: manager.ID},
		{ID: 11, ManagerID: manager.ID},
	}, 100))
	require.NoError(t, db.ResetSequences(env.DB))

	next := &model.Store{ManagerID: manager.ID}
	require.NoError(t, env.DB.Create(next).Error)
	assert.Equal(t, uint(12), next.ID, "store sequence should continue after imported IDs")
}
