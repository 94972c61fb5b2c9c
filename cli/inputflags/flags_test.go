package inputflags_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/rowbatch/cli/inputflags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const count = `{"relation": {"columns": [{"columnName": "count", "columnType": "INT64"}]},
 "rowBatches": [{"numRows": "1", "cols": [{"int64Data": {"data": [3]}}]}]}`

func newFlags(t *testing.T, args ...string) *inputflags.Flags {
	var f inputflags.Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	require.NoError(t, f.Init())
	return &f
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte(count), 0644))
	require.NoError(t, os.WriteFile(b, []byte(count), 0644))
	f := newFlags(t)
	readers, err := f.Open([]string{a, b})
	require.NoError(t, err)
	require.Len(t, readers, 2)
	for _, r := range readers {
		res, err := r.Read()
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.RowBatches[0].NumRows)
		require.NoError(t, r.Close())
	}

	readers, err = f.Open([]string{a, filepath.Join(dir, "missing.json")})
	assert.ErrorContains(t, err, "missing.json")
	assert.Nil(t, readers)
}

func TestInitBadFormat(t *testing.T) {
	var f inputflags.Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"-i", "jsn"}))
	assert.ErrorContains(t, f.Init(), `did you mean "json"?`)
}
