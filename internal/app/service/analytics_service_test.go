package service

import (
	"testing"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_Report(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
	alice := seedUser(t, testDB, "alice", model.RoleCustomer, 1, 1)
	bob := seedUser(t, testDB, "bob", model.RoleCustomer, 2, 2)
	store := seedStore(t, testDB, manager.ID, 0, 0)
	seedProduct(t, testDB, store.ID, "Pen", 100, 1)
	seedProduct(t, testDB, store.ID, "Ink", 100, 1)

	for _, o := range []struct {
		customer *model.User
		product  string
	}{
		{alice, "Pen"}, {alice, "Pen"}, {alice, "Ink"}, {bob, "Pen"},
	} {
		_, err := svc.Orders.PlaceOrder(o.customer.ID, store.ID, o.product, 1)
		require.NoError(t, err)
	}
	_, err := svc.Products.UpdateProduct(manager.ID, store.ID, "Ink", ProductChanges{Price: ptr(2.0)})
	require.NoError(t, err)

	report, err := svc.Analytics.Report(manager.ID)
	require.NoError(t, err)

	assert.Equal(t, manager.ID, report.Manager.ID)
	assert.Len(t, report.Stores, 1)
	require.Len(t, report.PopularProducts, 2)
	assert.Equal(t, "Pen", report.PopularProducts[0].ProductName)
	assert.Equal(t, int64(3), report.PopularProducts[0].OrderCount)
	require.Len(t, report.PopularCustomers, 2)
	assert.Equal(t, alice.ID, report.PopularCustomers[0].CustomerID)
	assert.Equal(t, int64(3), report.PopularCustomers[0].OrderCount)
	assert.Len(t, report.RecentUpdates, 1)
}

func TestAnalyticsService_ReportRequiresManager(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	customer := seedUser(t, testDB, "customer", model.RoleCustomer, 0, 0)

	_, err := svc.Analytics.Report(customer.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
