package workflow

import (
	"testing"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/ikkim/storefront/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountWorkflow_CreateUser(t *testing.T) {
	f := setupWorkflowTest(t)
	f.user(t, "alice", model.RoleCustomer, 0, 0)
	w := NewAccountWorkflow(f.services.Auth)

	s, out := session(0,
		"",      // name required
		"alice", // taken
		"bob",
		"ab", // password too short
		"secret",
		"91", // latitude out of range
		"45.5",
		"-181", // longitude out of range
		"-122.6",
	)
	require.NoError(t, w.CreateUser(s))

	assert.Contains(t, out.String(), validation.MsgNameRequired)
	assert.Contains(t, out.String(), "That name has already been taken. Please choose another.")
	assert.Contains(t, out.String(), validation.MsgPasswordLength)
	assert.Contains(t, out.String(), validation.MsgLatitudeFormat)
	assert.Contains(t, out.String(), validation.MsgLongitudeFormat)
	assert.Contains(t, out.String(), "User successfully created!")

	var bob model.User
	require.NoError(t, f.db.Where("name = ?", "bob").First(&bob).Error)
	assert.Equal(t, model.RoleCustomer, bob.Role)
	assert.Equal(t, 45.5, bob.Latitude)
	assert.Equal(t, -122.6, bob.Longitude)
	assert.True(t, util.VerifyPassword(bob.PasswordHash, "secret"))
	assert.Equal(t, int64(2), f.count(t, &model.User{}))
}

func TestAccountWorkflow_LogIn(t *testing.T) {
	f := setupWorkflowTest(t)
	carol := f.user(t, "carol", model.RoleManager, 0, 0)
	w := NewAccountWorkflow(f.services.Auth)

	t.Run("Success", func(t *testing.T) {
		s, _ := session(0, "carol", "secret")
		user, err := w.LogIn(s)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, carol.ID, user.ID)
		assert.Equal(t, model.RoleManager, user.Role)
	})

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"Wrong password", "carol", "Secret"},
		{"Unknown name", "nobody", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := session(0, tt.username, tt.password)
			user, err := w.LogIn(s)
			require.NoError(t, err)
			assert.Nil(t, user)
			assert.Contains(t, out.String(), "Unrecognized username or incorrect password entered.")
		})
	}
}
