package arrowio_test

import (
	"bytes"
	"testing"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/pkg/nano"
	"github.com/brimdata/rowbatch/raw"
	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/arrowio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rel = rowbatch.NewRelation(
	rowbatch.ColumnSchema{Name: "time_", Type: rowbatch.TypeTime64NS},
	rowbatch.ColumnSchema{Name: "upid", Type: rowbatch.TypeUInt128},
	rowbatch.ColumnSchema{Name: "latency", Type: rowbatch.TypeDuration64NS},
	rowbatch.ColumnSchema{Name: "count", Type: rowbatch.TypeInt64},
	rowbatch.ColumnSchema{Name: "ratio", Type: rowbatch.TypeFloat64},
	rowbatch.ColumnSchema{Name: "ok", Type: rowbatch.TypeBoolean},
	rowbatch.ColumnSchema{Name: "req", Type: rowbatch.TypeString},
)

func batch(n int) *rowbatch.Batch {
	b := &rowbatch.Batch{NumRows: n}
	var (
		ts   []nano.Ts
		ids  []rowbatch.UInt128
		lat  []nano.Duration
		cnt  []int64
		rat  []float64
		ok   []bool
		reqs []string
	)
	for i := 0; i < n; i++ {
		ts = append(ts, nano.Ts(1425565514419000000+int64(i)))
		ids = append(ids, rowbatch.UInt128{High: uint64(i), Low: ^uint64(0)})
		lat = append(lat, nano.Duration(i)*nano.Millisecond)
		cnt = append(cnt, int64(-i))
		rat = append(rat, float64(i)/4)
		ok = append(ok, i%2 == 0)
		reqs = append(reqs, string(rune('a'+i)))
	}
	b.Cols = []rowbatch.Column{
		&rowbatch.Time64NSColumn{Data: ts},
		&rowbatch.UInt128Column{Data: ids},
		&rowbatch.Duration64NSColumn{Data: lat},
		&rowbatch.Int64Column{Data: cnt},
		&rowbatch.Float64Column{Data: rat},
		&rowbatch.BoolColumn{Data: ok},
		&rowbatch.StringColumn{Data: reqs},
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	batches := []*rowbatch.Batch{batch(3), batch(2)}
	res, err := raw.FromTyped(rel, batches)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := arrowio.NewWriter(zio.NopCloser(&buf))
	require.NoError(t, w.Write(res))
	require.NoError(t, w.Close())

	r, err := arrowio.NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, rel, r.Relation())
	for _, expected := range batches {
		b, err := r.ReadBatch()
		require.NoError(t, err)
		assert.Equal(t, expected, b)
	}
	b, err := r.ReadBatch()
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestReadResults(t *testing.T) {
	res, err := raw.FromTyped(rel, []*rowbatch.Batch{batch(2)})
	require.NoError(t, err)
	var buf bytes.Buffer
	w := arrowio.NewWriter(zio.NopCloser(&buf))
	require.NoError(t, w.Write(res))
	require.NoError(t, w.Write(res))
	require.NoError(t, w.Close())

	r, err := arrowio.NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()
	n, err := zio.Copy(&counter{}, r)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMultipleRelations(t *testing.T) {
	res, err := raw.FromTyped(rel, []*rowbatch.Batch{batch(1)})
	require.NoError(t, err)
	other, err := raw.FromTyped(rowbatch.NewRelation(rowbatch.ColumnSchema{Name: "a", Type: rowbatch.TypeInt64}),
		[]*rowbatch.Batch{{NumRows: 1, Cols: []rowbatch.Column{&rowbatch.Int64Column{Data: []int64{1}}}}})
	require.NoError(t, err)
	var buf bytes.Buffer
	w := arrowio.NewWriter(zio.NopCloser(&buf))
	require.NoError(t, w.Write(res))
	assert.ErrorIs(t, w.Write(other), arrowio.ErrMultipleTypes)
	require.NoError(t, w.Close())
}

func TestUnsupportedType(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{{Name: "a", Type: arrow.PrimitiveTypes.Int32}}, nil)
	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()
	b.Field(0).(*array.Int32Builder).AppendValues([]int32{1}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	iw := ipc.NewWriter(&buf, ipc.WithSchema(schema))
	require.NoError(t, iw.Write(rec))
	require.NoError(t, iw.Close())

	_, err := arrowio.NewReader(&buf)
	assert.ErrorIs(t, err, arrowio.ErrUnsupportedType)
}

type counter struct{}

func (*counter) Write(*raw.Result) error { return nil }
