package arrowio

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/pkg/nano"
	"github.com/brimdata/rowbatch/raw"
	"golang.org/x/exp/slices"
)

// Reader reads an Arrow IPC stream.  Each Arrow record becomes one batch.
// Null slots read as the zero value of their column type.
type Reader struct {
	rr  *ipc.Reader
	rel *rowbatch.Relation
}

func NewReader(r io.Reader) (*Reader, error) {
	rr, err := ipc.NewReader(r)
	if err != nil {
		return nil, err
	}
	rel, err := newRelation(rr.Schema())
	if err != nil {
		rr.Release()
		return nil, err
	}
	return &Reader{rr: rr, rel: rel}, nil
}

func (r *Reader) Relation() *rowbatch.Relation {
	return r.rel
}

// ReadBatch returns the next batch, or nil at end of stream.
func (r *Reader) ReadBatch() (*rowbatch.Batch, error) {
	if !r.rr.Next() {
		return nil, r.rr.Err()
	}
	return newBatch(r.rel, r.rr.Record())
}

// Read returns the next record as a single-batch result.
func (r *Reader) Read() (*raw.Result, error) {
	batch, err := r.ReadBatch()
	if batch == nil || err != nil {
		return nil, err
	}
	return raw.FromTyped(r.rel, []*rowbatch.Batch{batch})
}

func (r *Reader) Close() error {
	if r.rr != nil {
		r.rr.Release()
		r.rr = nil
	}
	return nil
}

func newBatch(rel *rowbatch.Relation, rec arrow.Record) (*rowbatch.Batch, error) {
	batch := &rowbatch.Batch{
		NumRows: int(rec.NumRows()),
		Cols:    make([]rowbatch.Column, 0, rec.NumCols()),
	}
	for i, arr := range rec.Columns() {
		col, err := newColumn(rel.Columns[i].Type, arr)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", rel.Columns[i].Name, err)
		}
		batch.Cols = append(batch.Cols, col)
	}
	return batch, nil
}

// newColumn copies arr out of Arrow memory so the column outlives the
// record it came from.
func newColumn(typ rowbatch.Type, arr arrow.Array) (rowbatch.Column, error) {
	switch arr := arr.(type) {
	case *array.Boolean:
		data := make([]bool, arr.Len())
		for i := range data {
			data[i] = arr.Value(i)
		}
		return &rowbatch.BoolColumn{Data: data}, nil
	case *array.Int64:
		return &rowbatch.Int64Column{Data: slices.Clone(arr.Int64Values())}, nil
	case *array.Float64:
		return &rowbatch.Float64Column{Data: slices.Clone(arr.Float64Values())}, nil
	case *array.String:
		data := make([]string, arr.Len())
		for i := range data {
			data[i] = string(append([]byte(nil), arr.Value(i)...))
		}
		return &rowbatch.StringColumn{Data: data}, nil
	case *array.Timestamp:
		vals := arr.TimestampValues()
		data := make([]nano.Ts, len(vals))
		for i, v := range vals {
			data[i] = nano.Ts(v)
		}
		return &rowbatch.Time64NSColumn{Data: data}, nil
	case *array.Duration:
		vals := arr.DurationValues()
		data := make([]nano.Duration, len(vals))
		for i, v := range vals {
			data[i] = nano.Duration(v)
		}
		return &rowbatch.Duration64NSColumn{Data: data}, nil
	case *array.Struct:
		if typ != rowbatch.TypeUInt128 {
			break
		}
		high, ok1 := arr.Field(0).(*array.Uint64)
		low, ok2 := arr.Field(1).(*array.Uint64)
		if !ok1 || !ok2 {
			break
		}
		data := make([]rowbatch.UInt128, arr.Len())
		for i := range data {
			data[i] = rowbatch.UInt128{High: high.Value(i), Low: low.Value(i)}
		}
		return &rowbatch.UInt128Column{Data: data}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, arr.DataType())
}
