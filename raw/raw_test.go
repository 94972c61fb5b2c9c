package raw_test

import (
	"strings"
	"testing"

	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/pkg/nano"
	"github.com/brimdata/rowbatch/raw"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countJSON = `{
	"relation": {"columns": [{"columnName": "count", "columnType": "INT64"}]},
	"rowBatches": [{"numRows": "2", "cols": [{"int64Data": {"data": [3, 5]}}]}]
}`

func TestDecodeJSON(t *testing.T) {
	res, err := raw.UnmarshalJSON([]byte(countJSON))
	require.NoError(t, err)
	assert.Equal(t, []string{"count"}, res.Relation.Names())
	require.Len(t, res.RowBatches, 1)
	assert.Equal(t, raw.Count(2), res.RowBatches[0].NumRows)
	tag, data, err := res.RowBatches[0].Cols[0].Field()
	require.NoError(t, err)
	assert.Equal(t, raw.TagInt64, tag)
	assert.Equal(t, []any{json.Number("3"), json.Number("5")}, data)
}

func TestCount(t *testing.T) {
	for input, expected := range map[string]raw.Count{`"2"`: 2, `2`: 2, `"0"`: 0, `null`: 0} {
		var c raw.Count
		require.NoError(t, json.Unmarshal([]byte(input), &c), "input: %s", input)
		assert.Equal(t, expected, c, "input: %s", input)
	}
	for _, input := range []string{`"-1"`, `-1`, `"x"`, `1.5`, `""`} {
		var c raw.Count
		assert.Error(t, json.Unmarshal([]byte(input), &c), "input: %s", input)
	}
}

func TestColumnType(t *testing.T) {
	for input, expected := range map[string]rowbatch.Type{
		`"STRING"`:   rowbatch.TypeString,
		`"TIME64NS"`: rowbatch.TypeTime64NS,
		`3`:          rowbatch.TypeUInt128,
		`"BOGUS"`:    rowbatch.TypeUnknown,
		`0`:          rowbatch.TypeUnknown,
	} {
		var typ raw.ColumnType
		require.NoError(t, json.Unmarshal([]byte(input), &typ), "input: %s", input)
		assert.Equal(t, expected, typ.Type(), "input: %s", input)
	}
}

func TestMalformedCell(t *testing.T) {
	cases := map[string]string{
		"empty":    `{}`,
		"multiple": `{"int64Data": {"data": [1]}, "stringData": {"data": ["a"]}}`,
		"unknown":  `{"int32Data": {"data": [1]}}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			var c raw.Cell
			require.NoError(t, json.Unmarshal([]byte(input), &c))
			_, _, err := c.Field()
			assert.ErrorIs(t, err, raw.ErrMalformedCell)
		})
	}
	var c *raw.Cell
	_, _, err := c.Field()
	assert.ErrorIs(t, err, raw.ErrMalformedCell)
}

func TestTyped(t *testing.T) {
	const input = `{
		"relation": {"columns": [
			{"columnName": "time_", "columnType": "TIME64NS"},
			{"columnName": "upid", "columnType": "UINT128"},
			{"columnName": "latency", "columnType": "DURATION64NS"},
			{"columnName": "ratio", "columnType": "FLOAT64"},
			{"columnName": "ok", "columnType": "BOOLEAN"},
			{"columnName": "req", "columnType": "STRING"}
		]},
		"rowBatches": [{
			"numRows": "2",
			"cols": [
				{"time64nsData": {"data": ["1999999", "2000000"]}},
				{"uint128Data": {"data": [{"high": "1"}, {"low": "7"}]}},
				{"duration64nsData": {"data": ["10", 20]}},
				{"float64Data": {"data": [0.5, "NaN"]}},
				{"booleanData": {"data": [true, false]}},
				{"stringData": {"data": ["GET /", "{\"a\":1}"]}}
			]
		}]
	}`
	res, err := raw.UnmarshalJSON([]byte(input))
	require.NoError(t, err)
	rel, batches, err := res.Typed()
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"time_", "upid", "latency", "ratio", "ok", "req"}, rel.Names())
	cols := batches[0].Cols
	assert.Equal(t, []nano.Ts{1999999, 2000000}, cols[0].(*rowbatch.Time64NSColumn).Data)
	assert.Equal(t, []rowbatch.UInt128{{High: 1}, {Low: 7}}, cols[1].(*rowbatch.UInt128Column).Data)
	assert.Equal(t, []nano.Duration{10, 20}, cols[2].(*rowbatch.Duration64NSColumn).Data)
	assert.Equal(t, 0.5, cols[3].(*rowbatch.Float64Column).Data[0])
	assert.NotEqual(t, cols[3].(*rowbatch.Float64Column).Data[1], cols[3].(*rowbatch.Float64Column).Data[1])

	rows, err := rowbatch.Assemble(rel, batches)
	require.NoError(t, err)
	assert.Equal(t, rowbatch.Row{
		"time_":   int64(1),
		"upid":    "18446744073709551616",
		"latency": int64(10),
		"ratio":   0.5,
		"ok":      true,
		"req":     "GET /",
	}, rows[0])
}

func TestTypedErrors(t *testing.T) {
	cases := []struct {
		name, input string
		err         error
	}{
		{
			"invalid value",
			`{"relation": {"columns": [{"columnName": "a", "columnType": "INT64"}]},
			  "rowBatches": [{"numRows": "1", "cols": [{"int64Data": {"data": ["x"]}}]}]}`,
			raw.ErrInvalidValue,
		},
		{
			"type mismatch",
			`{"relation": {"columns": [{"columnName": "a", "columnType": "STRING"}]},
			  "rowBatches": [{"numRows": "1", "cols": [{"int64Data": {"data": [1]}}]}]}`,
			rowbatch.ErrUnsupportedColumnType,
		},
		{
			"unknown type",
			`{"relation": {"columns": [{"columnName": "a", "columnType": "INT32"}]}}`,
			rowbatch.ErrUnsupportedColumnType,
		},
		{
			"row count",
			`{"relation": {"columns": [{"columnName": "a", "columnType": "INT64"}]},
			  "rowBatches": [{"numRows": "3", "cols": [{"int64Data": {"data": [1]}}]}]}`,
			rowbatch.ErrRowCountMismatch,
		},
		{
			"malformed",
			`{"relation": {"columns": [{"columnName": "a", "columnType": "INT64"}]},
			  "rowBatches": [{"numRows": "1", "cols": [{}]}]}`,
			raw.ErrMalformedCell,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := raw.UnmarshalJSON([]byte(c.input))
			require.NoError(t, err)
			_, _, err = res.Typed()
			assert.ErrorIs(t, err, c.err)
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	const input = `
relation:
  columns:
    - columnName: count
      columnType: INT64
    - columnName: upid
      columnType: UINT128
rowBatches:
  - numRows: "2"
    cols:
      - int64Data:
          data: [3, 5]
      - uint128Data:
          data: [{high: 0, low: 1}, {high: 1, low: 0}]
`
	res, err := raw.DecodeYAML(strings.NewReader(input))
	require.NoError(t, err)
	rel, batches, err := res.Typed()
	require.NoError(t, err)
	rows, err := rowbatch.Assemble(rel, batches)
	require.NoError(t, err)
	assert.Equal(t, []rowbatch.Row{
		{"count": int64(3), "upid": "1"},
		{"count": int64(5), "upid": "18446744073709551616"},
	}, rows)

	_, err = raw.DecodeYAML(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFromTyped(t *testing.T) {
	rel := rowbatch.NewRelation(
		rowbatch.ColumnSchema{Name: "t", Type: rowbatch.TypeTime64NS},
		rowbatch.ColumnSchema{Name: "u", Type: rowbatch.TypeUInt128},
	)
	batches := []*rowbatch.Batch{{
		NumRows: 1,
		Cols: []rowbatch.Column{
			&rowbatch.Time64NSColumn{Data: []nano.Ts{5_000_000}},
			&rowbatch.UInt128Column{Data: []rowbatch.UInt128{{High: 2, Low: 3}}},
		},
	}}
	res, err := raw.FromTyped(rel, batches)
	require.NoError(t, err)
	b, err := json.Marshal(res)
	require.NoError(t, err)

	again, err := raw.UnmarshalJSON(b)
	require.NoError(t, err)
	rel2, batches2, err := again.Typed()
	require.NoError(t, err)
	assert.Equal(t, rel, rel2)
	assert.Equal(t, batches, batches2)
}

func TestReaderStream(t *testing.T) {
	r := raw.NewReader(strings.NewReader(countJSON + "\n" + countJSON))
	for i := 0; i < 2; i++ {
		res, err := r.Read()
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, []string{"count"}, res.Relation.Names())
	}
	res, err := r.Read()
	require.NoError(t, err)
	assert.Nil(t, res)

	_, err = raw.NewReader(strings.NewReader(`{"relation": [`)).Read()
	assert.Error(t, err)
}
