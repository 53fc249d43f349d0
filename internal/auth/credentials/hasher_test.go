package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, version, err := HashPassword("AdminTeste123!")
	require.NoError(t, err)

	assert.Equal(t, HashVersionBcrypt, version)
	assert.NoError(t, VerifyPassword(hash, "AdminTeste123!"))
	assert.Error(t, VerifyPassword(hash, "WrongPassword123!"))
}

func TestHashPasswordRejectsShort(t *testing.T) {
	_, _, err := HashPassword("curta")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}
