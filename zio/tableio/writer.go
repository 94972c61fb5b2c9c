package tableio

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/raw"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
)

// Writer renders results as aligned text columns.  Results are typed and
// assembled first, so times are shown at millisecond resolution.  The
// header is repeated every limit lines and whenever the relation changes.
type Writer struct {
	writer io.WriteCloser
	table  *tabwriter.Writer
	rel    *rowbatch.Relation
	limit  int
	nline  int
}

func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{
		writer: w,
		table:  tabwriter.NewWriter(w, 0, 8, 1, ' ', 0),
		limit:  1000,
	}
}

func (w *Writer) writeHeader(rel *rowbatch.Relation) {
	names := rel.Names()
	for i, name := range names {
		names[i] = strings.ToUpper(name)
	}
	fmt.Fprintln(w.table, strings.Join(names, "\t"))
}

func (w *Writer) Write(res *raw.Result) error {
	rel, batches, err := res.Typed()
	if err != nil {
		return err
	}
	rows, err := rowbatch.Assemble(rel, batches)
	if err != nil {
		return err
	}
	if w.rel == nil || !slices.Equal(w.rel.Columns, rel.Columns) {
		if w.rel != nil {
			if err := w.flush(); err != nil {
				return err
			}
		}
		w.writeHeader(rel)
		w.rel = rel
		w.nline = 0
	}
	fields := make([]string, len(rel.Columns))
	for _, row := range rows {
		if w.nline >= w.limit {
			if err := w.flush(); err != nil {
				return err
			}
			w.writeHeader(rel)
			w.nline = 0
		}
		for i, col := range rel.Columns {
			fields[i] = format(col.Type, row[col.Name])
		}
		w.nline++
		if _, err := fmt.Fprintf(w.table, "%s\n", strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func format(typ rowbatch.Type, v any) string {
	switch v := v.(type) {
	case string:
		if v == "" {
			return "-"
		}
		return strings.NewReplacer("\t", "\\t", "\n", "\\n").Replace(v)
	case int64:
		if typ == rowbatch.TypeTime64NS {
			return time.UnixMilli(v).UTC().Format(time.RFC3339Nano)
		}
		if typ == rowbatch.TypeDuration64NS {
			return time.Duration(v).String()
		}
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', 6, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(v)
}

func (w *Writer) flush() error {
	return w.table.Flush()
}

func (w *Writer) Close() error {
	return multierr.Append(w.flush(), w.writer.Close())
}
