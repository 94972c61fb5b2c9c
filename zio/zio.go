package zio

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/brimdata/rowbatch/raw"
	"golang.org/x/exp/slices"
)

var formats = []string{"csv", "json", "ndjson", "table", "arrows", "parquet", "yaml"}

// Formats returns the names of the supported data formats.
func Formats() []string {
	return slices.Clone(formats)
}

func Extension(format string) string {
	switch format {
	case "csv":
		return ".csv"
	case "json":
		return ".json"
	case "ndjson":
		return ".ndjson"
	case "table":
		return ".tbl"
	case "arrows":
		return ".arrows"
	case "parquet":
		return ".parquet"
	case "yaml":
		return ".yaml"
	default:
		return ""
	}
}

// FormatFromPath returns the format implied by the extension of path,
// ignoring a trailing compression extension, or "" if there is none.
func FormatFromPath(path string) string {
	ext := filepath.Ext(path)
	switch ext {
	case ".gz", ".lz4", ".zst":
		ext = filepath.Ext(strings.TrimSuffix(path, ext))
	}
	if ext == ".yml" {
		return "yaml"
	}
	for _, f := range formats {
		if Extension(f) == ext {
			return f
		}
	}
	return ""
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

// Reader wraps the Read method.
//
// Read returns the next result and a nil error, a nil result and the next
// error, or a nil result and nil error to indicate that no results remain.
type Reader interface {
	Read() (*raw.Result, error)
}

type Writer interface {
	Write(*raw.Result) error
}

type ReadCloser interface {
	Reader
	io.Closer
}

type WriteCloser interface {
	Writer
	io.Closer
}

func NopReadCloser(r Reader) ReadCloser {
	return nopReadCloser{r}
}

type nopReadCloser struct {
	Reader
}

func (nopReadCloser) Close() error { return nil }

// ConcatReader returns a Reader that is the logical concatenation of readers,
// which are read sequentially.
func ConcatReader(readers ...Reader) Reader {
	if len(readers) == 1 {
		return readers[0]
	}
	return &concatReader{slices.Clone(readers)}
}

type concatReader struct {
	readers []Reader
}

func (c *concatReader) Read() (*raw.Result, error) {
	for len(c.readers) > 0 {
		res, err := c.readers[0].Read()
		if res != nil || err != nil {
			return res, err
		}
		c.readers = c.readers[1:]
	}
	return nil, nil
}

// Copy copies src to dst a la io.Copy and returns the number of results
// copied.
func Copy(dst Writer, src Reader) (int, error) {
	return CopyWithContext(context.Background(), dst, src)
}

func CopyWithContext(ctx context.Context, dst Writer, src Reader) (int, error) {
	var n int
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		res, err := src.Read()
		if err != nil || res == nil {
			return n, err
		}
		if err := dst.Write(res); err != nil {
			return n, err
		}
		n++
	}
}
