package outputflags_test

import (
	"flag"
	"testing"

	"github.com/brimdata/rowbatch/cli/outputflags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*outputflags.Flags, error) {
	var f outputflags.Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &f, f.Init()
}

func TestFormatFromOutputFile(t *testing.T) {
	for _, c := range []struct {
		path, format string
	}{
		{"out.ndjson", "ndjson"},
		{"out.parquet.gz", "parquet"},
		{"out.json.zst", "json"},
		{"out.yaml", "csv"},
		{"out.yml", "csv"},
		{"out.txt", "csv"},
	} {
		f, err := parse(t, "-o", c.path)
		require.NoError(t, err, c.path)
		assert.Equal(t, c.format, f.Format, c.path)
	}
}

func TestExplicitFormat(t *testing.T) {
	f, err := parse(t, "-f", "json", "-o", "out.csv")
	require.NoError(t, err)
	assert.Equal(t, "json", f.Format)

	_, err = parse(t, "-f", "yaml", "-o", "out.csv")
	assert.ErrorContains(t, err, `-f: unknown format: output format "yaml"`)
}

func TestConflicts(t *testing.T) {
	_, err := parse(t, "-o", "out.csv", "-d", "dir")
	assert.EqualError(t, err, "cannot use -o with -d")

	_, err = parse(t, "-d", "dir", "-compress", "bz2")
	assert.ErrorContains(t, err, `unknown compression "bz2"`)
}
