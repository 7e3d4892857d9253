package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFlag(t *testing.T) {
	var f dateFlag
	fallback := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "", f.String())
	assert.Equal(t, "date", f.Type())
	assert.True(t, f.or(fallback).Equal(fallback))

	require.NoError(t, f.Set("2025-03-15"))
	assert.Equal(t, "2025-03-15", f.String())
	assert.True(t, f.or(fallback).Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))

	assert.Error(t, f.Set("15.03.2025"))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validatePositiveInt(""))
	assert.NoError(t, validatePositiveInt("25"))
	assert.Error(t, validatePositiveInt("0"))
	assert.Error(t, validatePositiveInt("abc"))

	assert.NoError(t, validateOptionalTime(""))
	assert.NoError(t, validateOptionalTime("2025-03-15T09:00:00+08:00"))
	assert.Error(t, validateOptionalTime("2025-03-15 09:00"))
}
