package service

import (
	"testing"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreService_NearbyStores_StorageOrderNotDistanceOrder(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
	customer := seedUser(t, testDB, "customer", model.RoleCustomer, 0, 0)

	s1 := seedStore(t, testDB, manager.ID, 20, 0)  // distance 20
	seedStore(t, testDB, manager.ID, 30, 1)        // just outside
	s3 := seedStore(t, testDB, manager.ID, 0, 5)   // distance 5
	s4 := seedStore(t, testDB, manager.ID, 18, 24) // distance 30, boundary included
	seedStore(t, testDB, manager.ID, -60, 100)     // far away

	nearby, err := svc.Stores.NearbyStores(customer.ID)
	require.NoError(t, err)
	require.Len(t, nearby, 3)

	assert.Equal(t, s1.ID, nearby[0].Store.ID)
	assert.Equal(t, s3.ID, nearby[1].Store.ID)
	assert.Equal(t, s4.ID, nearby[2].Store.ID)
	assert.InDelta(t, 20, nearby[0].Distance, 1e-9)
	assert.InDelta(t, 5, nearby[1].Distance, 1e-9)
	assert.InDelta(t, 30, nearby[2].Distance, 1e-9)
}

func TestStoreService_NearbyStores_InsertionOrderIndependentSet(t *testing.T) {
	coords := [][2]float64{{1, 1}, {40, 40}, {-10, 5}, {29, 0}, {0, 31}}

	collect := func(order []int) map[[2]float64]bool {
		testDB, svc := setupServiceTest(t)
		manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
		customer := seedUser(t, testDB, "customer", model.RoleCustomer, 0, 0)
		for _, i := range order {
			seedStore(t, testDB, manager.ID, coords[i][0], coords[i][1])
		}
		nearby, err := svc.Stores.NearbyStores(customer.ID)
		require.NoError(t, err)
		set := map[[2]float64]bool{}
		for _, n := range nearby {
			set[[2]float64{n.Store.Latitude, n.Store.Longitude}] = true
		}
		return set
	}

	want := map[[2]float64]bool{{1, 1}: true, {-10, 5}: true, {29, 0}: true}
	assert.Equal(t, want, collect([]int{0, 1, 2, 3, 4}))
	assert.Equal(t, want, collect([]int{4, 3, 2, 1, 0}))
}

func TestStoreService_NearestPrice(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
	s1 := seedStore(t, testDB, manager.ID, 0, 0)
	s2 := seedStore(t, testDB, manager.ID, 3, 4) // distance 5
	s3 := seedStore(t, testDB, manager.ID, 0, 2) // distance 2
	seedProduct(t, testDB, s2.ID, "P", 1, 10)
	seedProduct(t, testDB, s3.ID, "P", 1, 8)

	price, found, err := svc.Stores.NearestPrice(s1.ID, "P")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 8.0, price)
}

func TestStoreService_NearestPrice_TieKeepsFirst(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
	origin := seedStore(t, testDB, manager.ID, 0, 0)
	first := seedStore(t, testDB, manager.ID, 0, 3)
	second := seedStore(t, testDB, manager.ID, 3, 0)
	seedProduct(t, testDB, first.ID, "P", 1, 4)
	seedProduct(t, testDB, second.ID, "P", 1, 6)

	price, found, err := svc.Stores.NearestPrice(origin.ID, "P")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4.0, price)
}

func TestStoreService_NearestPrice_Unavailable(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
	origin := seedStore(t, testDB, manager.ID, 0, 0)
	seedProduct(t, testDB, origin.ID, "P", 1, 4)

	_, found, err := svc.Stores.NearestPrice(origin.ID, "P")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = svc.Stores.NearestPrice(origin.ID+50, "P")
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreService_CheckAccess(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
	other := seedUser(t, testDB, "other", model.RoleManager, 0, 0)
	admin := seedUser(t, testDB, "admin", model.RoleAdmin, 0, 0)
	customer := seedUser(t, testDB, "customer", model.RoleCustomer, 0, 0)
	store := seedStore(t, testDB, manager.ID, 0, 0)

	assert.NoError(t, svc.Stores.CheckAccess(manager.ID, store.ID))
	assert.NoError(t, svc.Stores.CheckAccess(admin.ID, store.ID))
	assert.ErrorIs(t, svc.Stores.CheckAccess(other.ID, store.ID), ErrNotStoreManager)
	assert.ErrorIs(t, svc.Stores.CheckAccess(customer.ID, store.ID), ErrPermissionDenied)
	assert.ErrorIs(t, svc.Stores.CheckAccess(manager.ID, store.ID+10), ErrStoreNotFound)
}

func TestStoreService_ListProducts(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
	store := seedStore(t, testDB, manager.ID, 0, 0)
	seedProduct(t, testDB, store.ID, "B", 1, 1)
	seedProduct(t, testDB, store.ID, "A", 2, 2)

	products, err := svc.Stores.ListProducts(store.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0].ProductName)

	_, err = svc.Stores.ListProducts(store.ID + 1)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreService_NearbyStores_RadiusInclusive(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
	customer := seedUser(t, testDB, "customer", model.RoleCustomer, 0, 0)
	edge := seedStore(t, testDB, manager.ID, 18, 24) // distance exactly 30
	seedStore(t, testDB, manager.ID, 18, 24.5)

	nearby, err := svc.Stores.NearbyStores(customer.ID)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, edge.ID, nearby[0].Store.ID)
	assert.Equal(t, 30.0, nearby[0].Distance)
}

func TestStoreService_ManagedAndAllStores(t *testing.T) {
	testDB, svc := setupServiceTest(t)
	manager := seedUser(t, testDB, "manager", model.RoleManager, 0, 0)
	other := seedUser(t, testDB, "other", model.RoleManager, 0, 0)
	mine := seedStore(t, testDB, manager.ID, 0, 0)
	theirs := seedStore(t, testDB, other.ID, 0, 0)

	managed, err := svc.Stores.ManagedStores(manager.ID)
	require.NoError(t, err)
	require.Len(t, managed, 1)
	assert.Equal(t, mine.ID, managed[0].ID)

	all, err := svc.Stores.AllStores()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, mine.ID, all[0].ID)
	assert.Equal(t, theirs.ID, all[1].ID)
}
