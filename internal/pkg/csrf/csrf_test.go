package csrf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	token, err := store.Issue()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	assert.NoError(t, store.Validate(token))
	assert.NoError(t, store.Validate(token), "tokens are reusable")

	other, err := store.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	assert.ErrorIs(t, store.Validate(""), ErrInvalidToken)
	assert.ErrorIs(t, store.Validate("forged"), ErrInvalidToken)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)

	token, err := store.Issue()
	require.NoError(t, err)
	require.NoError(t, store.Validate(token))

	time.Sleep(50 * time.Millisecond)
	assert.ErrorIs(t, store.Validate(token), ErrInvalidToken)
}

func TestNewMemoryStore_DefaultTTL(t *testing.T) {
	store := NewMemoryStore(0)
	token, err := store.Issue()
	require.NoError(t, err)
	assert.NoError(t, store.Validate(token))
}
