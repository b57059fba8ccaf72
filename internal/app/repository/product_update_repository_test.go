package repository

import (
	"testing"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUpdateRepository_FindRecentByManager(t *testing.T) {
	testDB, repos := setupRepositoryTest(t)
	manager := createUser(t, testDB, "manager", model.RoleManager, 0, 0)
	other := createUser(t, testDB, "other", model.RoleManager, 0, 0)
	admin := createUser(t, testDB, "admin", model.RoleAdmin, 0, 0)
	mine := createStore(t, testDB, manager.ID, 0, 0)
	theirs := createStore(t, testDB, other.ID, 0, 0)

	for i := 0; i < 6; i++ {
		require.NoError(t, repos.ProductUpdates.Create(&model.ProductUpdate{
			ManagerID:   manager.ID,
			StoreID:     mine.ID,
			ProductName: "Pen",
		}))
	}
	require.NoError(t, repos.ProductUpdates.Create(&model.ProductUpdate{ManagerID: other.ID, StoreID: theirs.ID, ProductName: "Ink"}))
	adminRow := &model.ProductUpdate{ManagerID: admin.ID, StoreID: mine.ID, ProductName: "Pad"}
	require.NoError(t, repos.ProductUpdates.Create(adminRow))

	updates, err := repos.ProductUpdates.FindRecentByManager(manager.ID, 5)
	require.NoError(t, err)
	require.Len(t, updates, 5)
	assert.Equal(t, adminRow.ID, updates[0].ID)
	for _, u := range updates {
		assert.Equal(t, mine.ID, u.StoreID)
		assert.False(t, u.UpdatedOn.IsZero())
	}
}
