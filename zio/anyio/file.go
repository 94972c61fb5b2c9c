package anyio

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/brimdata/rowbatch/zio"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"go.uber.org/multierr"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open opens path for reading, with "-" meaning standard input.  Gzip,
// LZ4, and Zstandard input is decompressed transparently.  If opts.Format
// is empty, the format is taken from the file extension.
func Open(path string, opts ReaderOpts) (zio.ReadCloser, error) {
	var f io.ReadCloser = io.NopCloser(os.Stdin)
	if path != "-" {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, err
		}
		if opts.Format == "" {
			opts.Format = zio.FormatFromPath(path)
		}
	}
	rc, err := NewFile(f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

// NewFile returns a reader for rc that closes rc when it is closed.
func NewFile(rc io.ReadCloser, opts ReaderOpts) (zio.ReadCloser, error) {
	r, closeFn, err := Decompress(rc)
	if err != nil {
		return nil, err
	}
	zr, err := NewReader(r, opts)
	if err != nil {
		closeFn()
		return nil, err
	}
	return &file{ReadCloser: zr, closers: []func() error{closeFn, rc.Close}}, nil
}

// Decompress sniffs the first bytes of r for a compression header and
// returns a reader of the decompressed stream along with a function that
// releases the decompressor.
func Decompress(r io.Reader) (io.Reader, func() error, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(4)
	nop := func() error { return nil }
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() error { zr.Close(); return nil }, nil
	case bytes.HasPrefix(head, lz4Magic):
		return lz4.NewReader(br), nop, nil
	}
	return br, nop, nil
}

type file struct {
	zio.ReadCloser
	closers []func() error
}

func (f *file) Close() error {
	err := f.ReadCloser.Close()
	for _, fn := range f.closers {
		err = multierr.Append(err, fn())
	}
	return err
}
