package workflow

import (
	"fmt"
	"testing"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderWorkflow_PlaceOrder(t *testing.T) {
	f := setupWorkflowTest(t)
	manager := f.user(t, "manager", model.RoleManager, 0, 0)
	customer := f.user(t, "customer", model.RoleCustomer, 0, 0)
	far := f.store(t, manager.ID, 50, 50)
	near := f.store(t, manager.ID, 1, 1)
	f.product(t, far.ID, "widget", 100, 1)
	f.product(t, near.ID, "widget", 5, 2.5)
	f.product(t, near.ID, "gadgetzzz", 2, 12)
	w := NewOrderWorkflow(f.services.Stores, f.services.Orders)

	s, out := session(customer.ID,
		fmt.Sprint(far.ID), // not within range
		fmt.Sprint(near.ID),
		"gizmo", // not carried
		"widget",
		"0",
		"6", // more than available
		"5",
	)
	require.NoError(t, w.PlaceOrder(s))

	assert.Contains(t, out.String(), "Please enter a store ID from the provided list of stores within 30 miles of your location.")
	assert.Equal(t, [][]string{{"widget", "5", "2.50"}}, tableRows(out.String(), "widget"))
	assert.Equal(t, [][]string{{"gadgetzzz", "2", "12.00"}}, tableRows(out.String(), "gadgetzzz"))
	assert.Contains(t, out.String(), msgNotInDatabase)
	assert.Contains(t, out.String(), fmt.Sprintf("Store %d has 5 units of widget available for order at $2.50 per unit.", near.ID))
	assert.Contains(t, out.String(), validation.MsgAtLeastOneUnit)
	assert.Contains(t, out.String(), msgCannotOrderMore)
	assert.Contains(t, out.String(), fmt.Sprintf("Order placed for 5 units of widget from store %d.", near.ID))

	assert.Equal(t, 0, f.loadProduct(t, near.ID, "widget").NumberOfUnits)
	assert.Equal(t, 100, f.loadProduct(t, far.ID, "widget").NumberOfUnits)

	var orders []model.Order
	require.NoError(t, f.db.Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, customer.ID, orders[0].CustomerID)
	assert.Equal(t, near.ID, orders[0].StoreID)
	assert.Equal(t, 5, orders[0].UnitsOrdered)
}

func TestOrderWorkflow_PlaceOrder_Cancel(t *testing.T) {
	f := setupWorkflowTest(t)
	manager := f.user(t, "manager", model.RoleManager, 0, 0)
	customer := f.user(t, "customer", model.RoleCustomer, 0, 0)
	store := f.store(t, manager.ID, 1, 1)
	f.product(t, store.ID, "widget", 5, 2.5)
	w := NewOrderWorkflow(f.services.Stores, f.services.Orders)

	tests := []struct {
		name  string
		input []string
	}{
		{"At store", []string{""}},
		{"At product", []string{fmt.Sprint(store.ID), ""}},
		{"At quantity", []string{fmt.Sprint(store.ID), "widget", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := session(customer.ID, tt.input...)
			require.NoError(t, w.PlaceOrder(s))
			assert.NotContains(t, out.String(), "Order placed")
			assert.Equal(t, int64(0), f.count(t, &model.Order{}))
			assert.Equal(t, 5, f.loadProduct(t, store.ID, "widget").NumberOfUnits)
		})
	}
}

func TestOrderWorkflow_PlaceOrder_EmptyStore(t *testing.T) {
	f := setupWorkflowTest(t)
	manager := f.user(t, "manager", model.RoleManager, 0, 0)
	customer := f.user(t, "customer", model.RoleCustomer, 0, 0)
	store := f.store(t, manager.ID, 1, 1)
	w := NewOrderWorkflow(f.services.Stores, f.services.Orders)

	s, out := session(customer.ID, fmt.Sprint(store.ID))
	require.NoError(t, w.PlaceOrder(s))
	assert.Contains(t, out.String(), fmt.Sprintf("Store %d has no products.", store.ID))
	assert.NotContains(t, out.String(), "Enter the name of the product")
}

func TestOrderWorkflow_PlaceOrder_NoStoresNearby(t *testing.T) {
	f := setupWorkflowTest(t)
	manager := f.user(t, "manager", model.RoleManager, 0, 0)
	customer := f.user(t, "customer", model.RoleCustomer, -60, -150)
	f.store(t, manager.ID, 1, 1)
	w := NewOrderWorkflow(f.services.Stores, f.services.Orders)

	s, out := session(customer.ID)
	require.NoError(t, w.PlaceOrder(s))
	assert.Equal(t, msgNoStoresNearby+"\n", out.String())
}

func TestOrderWorkflow_RecentOrders(t *testing.T) {
	f := setupWorkflowTest(t)
	manager := f.user(t, "manager", model.RoleManager, 0, 0)
	customer := f.user(t, "customer", model.RoleCustomer, 0, 0)
	other := f.user(t, "other", model.RoleCustomer, 0, 0)
	store := f.store(t, manager.ID, 1, 1)

	var ids []uint
	for i := 0; i < 6; i++ {
		ids = append(ids, f.order(t, customer.ID, store.ID, "widget", i+1).ID)
	}
	theirs := f.order(t, other.ID, store.ID, "widget", 9)
	w := NewOrderWorkflow(f.services.Stores, f.services.Orders)

	s, out := session(customer.ID)
	require.NoError(t, w.RecentOrders(s))

	for _, id := range ids[1:] {
		assert.Len(t, tableRows(out.String(), fmt.Sprint(id)), 1, "order %d", id)
	}
	assert.Empty(t, tableRows(out.String(), fmt.Sprint(ids[0])))
	assert.Empty(t, tableRows(out.String(), fmt.Sprint(theirs.ID)))

	s, out = session(other.ID)
	require.NoError(t, w.RecentOrders(s))
	assert.Len(t, tableRows(out.String(), fmt.Sprint(theirs.ID)), 1)

	lonely := f.user(t, "lonely", model.RoleCustomer, 0, 0)
	s, out = session(lonely.ID)
	require.NoError(t, w.RecentOrders(s))
	assert.Equal(t, "You have not placed any orders yet.\n", out.String())
}

func TestOrderWorkflow_StoreOrders(t *testing.T) {
	f := setupWorkflowTest(t)
	mine := f.user(t, "mine", model.RoleManager, 0, 0)
	theirs := f.user(t, "theirs", model.RoleManager, 0, 0)
	customer := f.user(t, "customer", model.RoleCustomer, 0, 0)
	own := f.store(t, mine.ID, 1, 1)
	foreign := f.store(t, theirs.ID, 2, 2)
	empty := f.store(t, mine.ID, 3, 3)
	placed := f.order(t, customer.ID, own.ID, "widget", 2)
	f.order(t, customer.ID, foreign.ID, "widget", 3)
	w := NewOrderWorkflow(f.services.Stores, f.services.Orders)

	s, out := session(mine.ID,
		"abc",
		"99",
		fmt.Sprint(foreign.ID),
		fmt.Sprint(own.ID),
		"y",
		fmt.Sprint(empty.ID),
		"",
	)
	require.NoError(t, w.StoreOrders(s))

	assert.Contains(t, out.String(), validation.MsgNotANumber)
	assert.Contains(t, out.String(), msgNotInDatabase)
	assert.Contains(t, out.String(), msgNotManaged)
	rows := tableRows(out.String(), fmt.Sprint(placed.ID))
	require.Len(t, rows, 1)
	assert.Equal(t, []string{fmt.Sprint(placed.ID), fmt.Sprint(customer.ID), fmt.Sprint(own.ID), "widget", "2"}, rows[0][:5])
	assert.Contains(t, out.String(), fmt.Sprintf("Store %d has no orders.", empty.ID))
}
