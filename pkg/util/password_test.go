package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	PasswordCost = bcrypt.MinCost
	m.Run()
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "Minimum length", password: "abc"},
		{name: "Maximum length", password: "abcdefghijk"},
		{name: "With spaces", password: "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.Contains(t, hash, "$2a$")
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	tests := []struct {
		name           string
		hashedPassword string
		password       string
		want           bool
	}{
		{name: "Correct password", hashedPassword: hash, password: "secret1", want: true},
		{name: "Different case", hashedPassword: hash, password: "SECRET1", want: false},
		{name: "Wrong password", hashedPassword: hash, password: "secret2", want: false},
		{name: "Empty password", hashedPassword: hash, password: "", want: false},
		{name: "Clear text is not a hash", hashedPassword: "secret1", password: "secret1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.hashedPassword, tt.password))
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	hash1, err1 := HashPassword("samepass")
	hash2, err2 := HashPassword("samepass")
	require.NoError(t, err1)
	require.NoError(t, err2)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, VerifyPassword(hash1, "samepass"))
	assert.True(t, VerifyPassword(hash2, "samepass"))
}
