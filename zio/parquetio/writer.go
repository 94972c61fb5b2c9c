package parquetio

import (
	"io"

	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/raw"
	"github.com/brimdata/rowbatch/zio/csvio"
	goparquet "github.com/fraugster/parquet-go"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

// Writer writes assembled rows to a Parquet file.  Every result must share
// the relation of the first.  Values are written as rowbatch.Extract
// produces them: UINT128 as a decimal string, TIME64NS as milliseconds,
// and DURATION64NS as nanoseconds.
type Writer struct {
	w io.WriteCloser

	fw  *goparquet.FileWriter
	rel *rowbatch.Relation
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Close() error {
	var err error
	if w.fw != nil {
		err = w.fw.Close()
	}
	return multierr.Append(err, w.w.Close())
}

func (w *Writer) Write(res *raw.Result) error {
	rel, batches, err := res.Typed()
	if err != nil {
		return err
	}
	if w.rel == nil {
		sd, err := newSchemaDefinition(rel)
		if err != nil {
			return err
		}
		w.rel = rel
		w.fw = goparquet.NewFileWriter(w.w,
			goparquet.WithSchemaDefinition(sd),
			goparquet.WithCreator("rbconv"),
		)
	} else if !slices.Equal(w.rel.Columns, rel.Columns) {
		return csvio.ErrNotDataFrame
	}
	rows, err := rowbatch.Assemble(rel, batches)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.fw.AddData(newRowData(row)); err != nil {
			return err
		}
	}
	return nil
}

func newRowData(row rowbatch.Row) map[string]interface{} {
	data := make(map[string]interface{}, len(row))
	for k, v := range row {
		if s, ok := v.(string); ok {
			data[k] = []byte(s)
		} else {
			data[k] = v
		}
	}
	return data
}
