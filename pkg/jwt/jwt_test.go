package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewManager("test-secret", 1)
	adminID := uuid.NewString()

	token, err := m.GenerateToken(adminID, "anna@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "anna@example.com", claims.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 1).GenerateToken(uuid.NewString(), "anna@example.com")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 1).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	// negative expiry produces an already expired token
	token, err := NewManager("test-secret", -1).GenerateToken(uuid.NewString(), "anna@example.com")
	require.NoError(t, err)

	_, err = NewManager("test-secret", 1).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", 1).ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateToken_MissingAdminID(t *testing.T) {
	m := NewManager("test-secret", 1)

	token, err := m.GenerateToken("", "anna@example.com")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}
