package etw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivityID(t *testing.T) {
	a, err := NewActivityID()
	require.NoError(t, err)
	b, err := NewActivityID()
	require.NoError(t, err)

	assert.False(t, a.IsEmpty())
	assert.NotEqual(t, a, b)
}
