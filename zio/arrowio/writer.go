package arrowio

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/raw"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

// Writer is a zio.Writer for the Arrow IPC stream format.  Each batch of
// each result is written as one Arrow record.  All results must share the
// relation of the first.
type Writer struct {
	w       io.WriteCloser
	writer  *ipc.Writer
	builder *array.RecordBuilder
	rel     *rowbatch.Relation
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Close() error {
	var err error
	if w.writer != nil {
		w.builder.Release()
		err = w.writer.Close()
		w.writer = nil
	}
	return multierr.Append(err, w.w.Close())
}

func (w *Writer) Write(res *raw.Result) error {
	rel, batches, err := res.Typed()
	if err != nil {
		return err
	}
	if w.rel == nil {
		schema, err := NewSchema(rel)
		if err != nil {
			return err
		}
		w.rel = rel
		w.builder = array.NewRecordBuilder(memory.DefaultAllocator, schema)
		w.writer = ipc.NewWriter(w.w, ipc.WithSchema(schema))
	} else if !slices.Equal(w.rel.Columns, rel.Columns) {
		return ErrMultipleTypes
	}
	for _, b := range batches {
		if err := w.writeBatch(b); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeBatch(batch *rowbatch.Batch) error {
	w.builder.Reserve(batch.NumRows)
	for i, col := range batch.Cols {
		if err := appendColumn(w.builder.Field(i), col); err != nil {
			return fmt.Errorf("column %q: %w", w.rel.Columns[i].Name, err)
		}
	}
	rec := w.builder.NewRecord()
	defer rec.Release()
	return w.writer.Write(rec)
}

func appendColumn(b array.Builder, col rowbatch.Column) error {
	switch col := col.(type) {
	case *rowbatch.BoolColumn:
		b.(*array.BooleanBuilder).AppendValues(col.Data, nil)
	case *rowbatch.Int64Column:
		b.(*array.Int64Builder).AppendValues(col.Data, nil)
	case *rowbatch.Float64Column:
		b.(*array.Float64Builder).AppendValues(col.Data, nil)
	case *rowbatch.StringColumn:
		b.(*array.StringBuilder).AppendValues(col.Data, nil)
	case *rowbatch.Time64NSColumn:
		tb := b.(*array.TimestampBuilder)
		for _, v := range col.Data {
			tb.Append(arrow.Timestamp(v))
		}
	case *rowbatch.Duration64NSColumn:
		db := b.(*array.DurationBuilder)
		for _, v := range col.Data {
			db.Append(arrow.Duration(v))
		}
	case *rowbatch.UInt128Column:
		sb := b.(*array.StructBuilder)
		high := sb.FieldBuilder(0).(*array.Uint64Builder)
		low := sb.FieldBuilder(1).(*array.Uint64Builder)
		for _, v := range col.Data {
			sb.Append(true)
			high.Append(v.High)
			low.Append(v.Low)
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, col)
	}
	return nil
}
