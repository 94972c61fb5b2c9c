package anyio

import (
	"errors"
	"fmt"
	"io"

	"github.com/agnivade/levenshtein"
	"github.com/brimdata/rowbatch/raw"
	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/arrowio"
	"github.com/brimdata/rowbatch/zio/csvio"
	"github.com/brimdata/rowbatch/zio/jsonio"
	"github.com/brimdata/rowbatch/zio/parquetio"
	"github.com/brimdata/rowbatch/zio/tableio"
	"golang.org/x/exp/slices"
)

var ErrUnknownFormat = errors.New("unknown format")

var (
	inputFormats  = []string{"json", "yaml", "arrows"}
	outputFormats = []string{"csv", "json", "ndjson", "table", "arrows", "parquet"}
)

func InputFormats() []string  { return slices.Clone(inputFormats) }
func OutputFormats() []string { return slices.Clone(outputFormats) }

// CheckInput returns an error if format is not an input format.
func CheckInput(format string) error {
	if slices.Contains(inputFormats, format) {
		return nil
	}
	return unknown("input", format, inputFormats)
}

// CheckOutput returns an error if format is not an output format.
func CheckOutput(format string) error {
	if slices.Contains(outputFormats, format) {
		return nil
	}
	return unknown("output", format, outputFormats)
}

func lookupReader(r io.Reader, format string) (zio.ReadCloser, error) {
	switch format {
	case "json":
		return zio.NopReadCloser(raw.NewReader(r)), nil
	case "yaml":
		return zio.NopReadCloser(raw.NewYAMLReader(r)), nil
	case "arrows":
		zr, err := arrowio.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	}
	return nil, unknown("input", format, inputFormats)
}

func lookupWriter(w io.WriteCloser, opts WriterOpts) (zio.WriteCloser, error) {
	switch opts.Format {
	case "csv":
		return csvio.NewWriter(w, opts.CSV), nil
	case "json":
		return jsonio.NewWriter(w, jsonio.WriterOpts{}), nil
	case "ndjson":
		return jsonio.NewWriter(w, jsonio.WriterOpts{Lines: true}), nil
	case "table":
		return tableio.NewWriter(w), nil
	case "arrows":
		return arrowio.NewWriter(w), nil
	case "parquet":
		return parquetio.NewWriter(w), nil
	}
	return nil, unknown("output", opts.Format, outputFormats)
}

func unknown(kind, format string, formats []string) error {
	err := fmt.Errorf("%w: %s format %q", ErrUnknownFormat, kind, format)
	if s := Suggest(format, formats); s != "" {
		err = fmt.Errorf("%w (did you mean %q?)", err, s)
	}
	return err
}

// Suggest returns the candidate closest to name if it is within a small
// edit distance, or "" otherwise.
func Suggest(name string, candidates []string) string {
	best, dist := "", 3
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < dist {
			best, dist = c, d
		}
	}
	return best
}
