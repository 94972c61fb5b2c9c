package jsonio

import (
	"bytes"
	"io"
	"math"

	"github.com/brimdata/rowbatch/raw"
	"github.com/goccy/go-json"
	"go.uber.org/multierr"
)

type WriterOpts struct {
	// Lines writes one object per line instead of a single array.
	Lines bool
}

// Writer writes the rows of each result as JSON objects whose keys follow
// the relation's column order.
type Writer struct {
	writer io.WriteCloser
	lines  bool
	nrows  int
	buf    bytes.Buffer
}

func NewWriter(wc io.WriteCloser, opts WriterOpts) *Writer {
	return &Writer{
		writer: wc,
		lines:  opts.Lines,
	}
}

func (w *Writer) Write(res *raw.Result) error {
	rows, err := Rows(res)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	names := res.Relation.Names()
	for _, row := range rows {
		w.buf.Reset()
		if !w.lines {
			if w.nrows == 0 {
				w.buf.WriteByte('[')
			} else {
				w.buf.WriteByte(',')
			}
		}
		w.buf.WriteByte('{')
		for i, name := range names {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := encode(&w.buf, name); err != nil {
				return err
			}
			w.buf.WriteByte(':')
			if err := encode(&w.buf, row[name]); err != nil {
				return err
			}
		}
		w.buf.WriteByte('}')
		if w.lines {
			w.buf.WriteByte('\n')
		}
		if _, err := w.writer.Write(w.buf.Bytes()); err != nil {
			return err
		}
		w.nrows++
	}
	return nil
}

func (w *Writer) Close() error {
	var err error
	if !w.lines {
		tail := "]\n"
		if w.nrows == 0 {
			tail = "[]\n"
		}
		_, err = io.WriteString(w.writer, tail)
	}
	return multierr.Append(err, w.writer.Close())
}

// encode writes v as JSON.  Non-finite floats, which JSON cannot
// represent, are written as the strings "NaN", "Infinity", and "-Infinity".
func encode(buf *bytes.Buffer, v any) error {
	if f, ok := v.(float64); ok {
		switch {
		case math.IsNaN(f):
			v = "NaN"
		case math.IsInf(f, 1):
			v = "Infinity"
		case math.IsInf(f, -1):
			v = "-Infinity"
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
