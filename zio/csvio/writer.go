package csvio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/brimdata/rowbatch"
	"github.com/brimdata/rowbatch/raw"
	"github.com/brimdata/rowbatch/zio"
	"github.com/goccy/go-json"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrNotDataFrame = errors.New("CSV output requires uniform columns but different relations encountered")

type WriterOpts struct {
	// BOM prefixes the output with a UTF-8 byte order mark.
	BOM bool
}

// Writer renders results as CSV text.  The header line is written once,
// from the first result's relation, and every later result must have the
// same column names.  Each value is wrapped in double quotes; string
// values are escaped first (see Escape).
type Writer struct {
	writer io.WriteCloser
	out    io.Writer
	bom    *transform.Writer
	hdr    []string
	line   strings.Builder
}

func NewWriter(w io.WriteCloser, opts WriterOpts) *Writer {
	cw := &Writer{writer: w, out: w}
	if opts.BOM {
		cw.bom = transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
		cw.out = cw.bom
	}
	return cw
}

// Format returns the CSV text of a single result.
func Format(res *raw.Result) (string, error) {
	var b strings.Builder
	w := NewWriter(zio.NopCloser(&b), WriterOpts{})
	if err := w.Write(res); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (w *Writer) Close() error {
	var err error
	if w.bom != nil {
		err = w.bom.Close()
	}
	return multierr.Append(err, w.writer.Close())
}

func (w *Writer) Write(res *raw.Result) error {
	if res == nil {
		return nil
	}
	names := res.Relation.Names()
	if w.hdr == nil {
		w.hdr = names
		if _, err := io.WriteString(w.out, strings.Join(names, ",")+"\n"); err != nil {
			return err
		}
	} else if !slices.Equal(w.hdr, names) {
		return ErrNotDataFrame
	}
	for k, batch := range res.RowBatches {
		if batch == nil {
			continue
		}
		if err := w.writeBatch(batch); err != nil {
			return fmt.Errorf("batch %d: %w", k, err)
		}
	}
	return nil
}

func (w *Writer) writeBatch(batch *raw.Batch) error {
	if len(batch.Cols) != len(w.hdr) {
		return fmt.Errorf("%w: relation has %d columns, batch has %d", rowbatch.ErrColumnCountMismatch, len(w.hdr), len(batch.Cols))
	}
	numRows := int(batch.NumRows)
	cols := make([][]any, 0, len(batch.Cols))
	for i, cell := range batch.Cols {
		_, data, err := cell.Field()
		if err != nil {
			return fmt.Errorf("column %q: %w", w.hdr[i], err)
		}
		if len(data) != numRows {
			return fmt.Errorf("%w: column %q has %d values, batch has %d rows", rowbatch.ErrRowCountMismatch, w.hdr[i], len(data), numRows)
		}
		cols = append(cols, data)
	}
	for j := 0; j < numRows; j++ {
		w.line.Reset()
		for i, data := range cols {
			if i > 0 {
				w.line.WriteByte(',')
			}
			w.line.WriteByte('"')
			w.line.WriteString(formatValue(data[j]))
			w.line.WriteByte('"')
		}
		w.line.WriteByte('\n')
		if _, err := io.WriteString(w.out, w.line.String()); err != nil {
			return err
		}
	}
	return nil
}

// Escape escapes a string value for the export format.  Each double quote
// becomes the four bytes \\\" (three backslashes and a quote).  A value
// that then begins with "{" or "[" gets two double quotes prepended, and
// one that ends with "}" or "]" gets two double quotes appended, so that
// embedded JSON objects and arrays are marked in a spreadsheet.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `"`, `\\\"`)
	if strings.HasPrefix(s, "{") {
		s = `""` + s
	}
	if strings.HasSuffix(s, "}") {
		s += `""`
	}
	if strings.HasPrefix(s, "[") {
		s = `""` + s
	}
	if strings.HasSuffix(s, "]") {
		s += `""`
	}
	return s
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return Escape(v)
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return formatFloat(v)
	case rowbatch.UInt128:
		return v.String()
	case map[string]any:
		if u, err := raw.ParseUInt128(v); err == nil {
			return u.String()
		}
	}
	// Anything else is rendered as JSON and escaped like a string.
	if b, err := json.Marshal(v); err == nil {
		return Escape(string(b))
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
