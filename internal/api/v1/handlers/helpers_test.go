package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	plain, err := parseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), plain)

	stamped, err := parseDate("2024-01-15T09:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 9, stamped.Hour())

	_, err = parseDate("15/01/2024")
	assert.Error(t, err)
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0, completionPercentage(0, 0))
	assert.Equal(t, 50, completionPercentage(1, 2))
	assert.Equal(t, 33, completionPercentage(1, 3))
	assert.Equal(t, 67, completionPercentage(2, 3))
	assert.Equal(t, 100, completionPercentage(5, 5))
}
