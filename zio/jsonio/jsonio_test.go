package jsonio_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/raw"
	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/jsonio"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = `{
	"relation": {"columns": [
		{"columnName": "time_", "columnType": "TIME64NS"},
		{"columnName": "count", "columnType": "INT64"},
		{"columnName": "req", "columnType": "STRING"}
	]},
	"rowBatches": [
		{"numRows": "2", "cols": [
			{"time64nsData": {"data": ["1999999", "2000000"]}},
			{"int64Data": {"data": [3, 5]}},
			{"stringData": {"data": ["a", "b"]}}
		]},
		{"numRows": "1", "cols": [
			{"time64nsData": {"data": ["3"]}},
			{"int64Data": {"data": [7]}},
			{"stringData": {"data": ["c"]}}
		]}
	]
}`

func decode(t *testing.T, s string) *raw.Result {
	res, err := raw.UnmarshalJSON([]byte(s))
	require.NoError(t, err)
	return res
}

func TestRows(t *testing.T) {
	rows, err := jsonio.Rows(decode(t, input))
	require.NoError(t, err)
	// Times are passed through untouched, not converted to milliseconds.
	expected := []rowbatch.Row{
		{"time_": "1999999", "count": json.Number("3"), "req": "a"},
		{"time_": "2000000", "count": json.Number("5"), "req": "b"},
		{"time_": "3", "count": json.Number("7"), "req": "c"},
	}
	assert.Equal(t, expected, rows)
}

func TestRowsNoBatches(t *testing.T) {
	rows, err := jsonio.Rows(decode(t, `{"relation": {"columns": [{"columnName": "a"}]}}`))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	rows, err = jsonio.Rows(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRowsMatchAssemble(t *testing.T) {
	res := decode(t, `{
		"relation": {"columns": [{"columnName": "count", "columnType": "INT64"}]},
		"rowBatches": [{"numRows": "2", "cols": [{"int64Data": {"data": [3, 5]}}]}]
	}`)
	rel, batches, err := res.Typed()
	require.NoError(t, err)
	typed, err := rowbatch.Assemble(rel, batches)
	require.NoError(t, err)
	assert.Equal(t, []rowbatch.Row{{"count": int64(3)}, {"count": int64(5)}}, typed)

	untyped, err := jsonio.Rows(res)
	require.NoError(t, err)
	require.Len(t, untyped, len(typed))
	for i := range typed {
		n, err := untyped[i]["count"].(json.Number).Int64()
		require.NoError(t, err)
		assert.Equal(t, typed[i]["count"], n)
	}
}

func TestRowsMalformed(t *testing.T) {
	_, err := jsonio.Rows(decode(t, `{
		"relation": {"columns": [{"columnName": "a"}]},
		"rowBatches": [{"numRows": "1", "cols": [{"bogusData": {"data": [1]}}]}]
	}`))
	assert.ErrorIs(t, err, raw.ErrMalformedCell)

	_, err = jsonio.Rows(decode(t, `{
		"relation": {"columns": [{"columnName": "a"}]},
		"rowBatches": [{"numRows": "2", "cols": [{"int64Data": {"data": [1]}}]}]
	}`))
	assert.ErrorIs(t, err, rowbatch.ErrRowCountMismatch)
}

func TestRowsHugeRowCount(t *testing.T) {
	for _, n := range []string{"9223372036854775807", "4611686018427387904", "1000000000000"} {
		_, err := jsonio.Rows(decode(t, `{
			"relation": {"columns": [{"columnName": "a"}]},
			"rowBatches": [
				{"numRows": "`+n+`", "cols": [{"int64Data": {"data": [1]}}]},
				{"numRows": "`+n+`", "cols": [{"int64Data": {"data": [1]}}]}
			]
		}`))
		assert.ErrorIs(t, err, rowbatch.ErrRowCountMismatch, n)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := jsonio.NewWriter(zio.NopCloser(&buf), jsonio.WriterOpts{})
	require.NoError(t, w.Write(decode(t, input)))
	require.NoError(t, w.Close())
	expected := `[{"time_":"1999999","count":3,"req":"a"},{"time_":"2000000","count":5,"req":"b"},{"time_":"3","count":7,"req":"c"}]` + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriterLines(t *testing.T) {
	var buf bytes.Buffer
	w := jsonio.NewWriter(zio.NopCloser(&buf), jsonio.WriterOpts{Lines: true})
	require.NoError(t, w.Write(decode(t, input)))
	require.NoError(t, w.Close())
	expected := `{"time_":"1999999","count":3,"req":"a"}
{"time_":"2000000","count":5,"req":"b"}
{"time_":"3","count":7,"req":"c"}
`
	assert.Equal(t, expected, buf.String())
}

func TestWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := jsonio.NewWriter(zio.NopCloser(&buf), jsonio.WriterOpts{})
	require.NoError(t, w.Write(decode(t, `{"relation": {"columns": []}}`)))
	require.NoError(t, w.Close())
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriterNonFinite(t *testing.T) {
	res, err := raw.FromTyped(
		rowbatch.NewRelation(rowbatch.ColumnSchema{Name: "f", Type: rowbatch.TypeFloat64}),
		[]*rowbatch.Batch{{NumRows: 2, Cols: []rowbatch.Column{&rowbatch.Float64Column{Data: []float64{math.NaN(), math.Inf(-1)}}}}},
	)
	require.NoError(t, err)
	var buf bytes.Buffer
	w := jsonio.NewWriter(zio.NopCloser(&buf), jsonio.WriterOpts{Lines: true})
	require.NoError(t, w.Write(res))
	require.NoError(t, w.Close())
	assert.Equal(t, "{\"f\":\"NaN\"}\n{\"f\":\"-Infinity\"}\n", buf.String())
}
