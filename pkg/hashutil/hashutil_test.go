package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("evolusys")
	require.NoError(t, err)
	assert.NotEqual(t, "evolusys", hash)

	assert.True(t, Verify("evolusys", hash))
	assert.False(t, Verify("wrong", hash))
	assert.False(t, Verify("evolusys", "not-a-hash"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("evolusys")
	require.NoError(t, err)
	second, err := Hash("evolusys")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify("evolusys", first))
	assert.True(t, Verify("evolusys", second))
}
