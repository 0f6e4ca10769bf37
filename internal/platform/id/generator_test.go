package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("0190a8e2-7b1c-7cc3-9d5e-1f2a3b4c5d6e"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("not-a-uuid"))
}
