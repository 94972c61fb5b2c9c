package auto_test

import (
	"testing"

	"github.com/brimdata/rowbatch/cli/auto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	var b auto.Bytes
	require.NoError(t, b.Set("25MiB"))
	assert.EqualValues(t, 25*1024*1024, b.Bytes)
	require.NoError(t, b.Set("1KB"))
	assert.EqualValues(t, 1000, b.Bytes)
	assert.Equal(t, "25MiB", auto.NewBytes(25*1024*1024).String())
	assert.Error(t, b.Set("lots"))
}
