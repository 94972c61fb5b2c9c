package emitter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/anyio"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"go.uber.org/multierr"
)

// NewFile creates a writer for path in the format given by opts.  An empty
// path means standard output, which is left open when the writer is
// closed.  Output is compressed when path ends in .gz, .lz4, or .zst.
func NewFile(path string, opts anyio.WriterOpts) (zio.WriteCloser, error) {
	if err := anyio.CheckOutput(opts.Format); err != nil {
		return nil, err
	}
	var wc io.WriteCloser
	if path == "" {
		wc = zio.NopCloser(os.Stdout)
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if wc, err = Compress(f, filepath.Ext(path)); err != nil {
			f.Close()
			return nil, err
		}
	}
	w, err := anyio.NewWriter(wc, opts)
	if err != nil {
		wc.Close()
		return nil, err
	}
	return w, nil
}

// Compress wraps w in a compressor selected by the file extension ext.
// Closing the result closes w.  Unrecognized extensions leave w as is.
func Compress(w io.WriteCloser, ext string) (io.WriteCloser, error) {
	switch strings.ToLower(ext) {
	case ".gz":
		return &compressor{gzip.NewWriter(w), w}, nil
	case ".lz4":
		return &compressor{lz4.NewWriter(w), w}, nil
	case ".zst":
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return &compressor{zw, w}, nil
	}
	return w, nil
}

type compressor struct {
	io.WriteCloser
	w io.Closer
}

func (c *compressor) Close() error {
	return multierr.Append(c.WriteCloser.Close(), c.w.Close())
}
