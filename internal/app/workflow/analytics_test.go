package workflow

import (
	"fmt"
	"testing"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsWorkflow(t *testing.T) {
	f := setupWorkflowTest(t)
	manager := f.user(t, "manager", model.RoleManager, 0, 0)
	other := f.user(t, "other", model.RoleManager, 0, 0)
	alice := f.user(t, "alice", model.RoleCustomer, 1.5, 2.25)
	bob := f.user(t, "bob", model.RoleCustomer, 0, 0)
	own := f.store(t, manager.ID, 0, 0)
	foreign := f.store(t, other.ID, 0, 0)
	f.order(t, alice.ID, own.ID, "widget", 1)
	f.order(t, alice.ID, own.ID, "widget", 1)
	f.order(t, bob.ID, own.ID, "gadget", 1)
	f.order(t, bob.ID, foreign.ID, "gadget", 1)
	f.order(t, bob.ID, foreign.ID, "gadget", 1)
	w := NewAnalyticsWorkflow(f.services.Analytics)

	t.Run("Popular items", func(t *testing.T) {
		s, out := session(manager.ID)
		require.NoError(t, w.PopularItems(s))
		assert.Equal(t, [][]string{{"widget", "2"}}, tableRows(out.String(), "widget"))
		assert.Equal(t, [][]string{{"gadget", "1"}}, tableRows(out.String(), "gadget"))
	})

	t.Run("Popular customers", func(t *testing.T) {
		s, out := session(manager.ID)
		require.NoError(t, w.PopularCustomers(s))
		assert.Equal(t, [][]string{{fmt.Sprint(alice.ID), "alice", "1.500000", "2.250000", "2"}},
			tableRows(out.String(), fmt.Sprint(alice.ID)))
		assert.Equal(t, [][]string{{fmt.Sprint(bob.ID), "bob", "0.000000", "0.000000", "1"}},
			tableRows(out.String(), fmt.Sprint(bob.ID)))
	})

	t.Run("No orders", func(t *testing.T) {
		idle := f.user(t, "idle", model.RoleManager, 0, 0)
		s, out := session(idle.ID)
		require.NoError(t, w.PopularItems(s))
		require.NoError(t, w.PopularCustomers(s))
		assert.Equal(t, "No orders have been placed at your stores.\nNo orders have been placed at your stores.\n", out.String())
	})
}
