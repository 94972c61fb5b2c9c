package anyio

import (
	"errors"
	"fmt"
	"io"

	"github.com/brimdata/rowbatch/zio"
)

var ErrMaxSize = errors.New("input exceeds maximum size")

type ReaderOpts struct {
	// Format is one of InputFormats.  The empty string means json.
	Format string
	// MaxSize limits the number of bytes read.  Zero means no limit.
	MaxSize int64
}

func NewReader(r io.Reader, opts ReaderOpts) (zio.ReadCloser, error) {
	if opts.MaxSize > 0 {
		r = &limitReader{r: r, max: opts.MaxSize}
	}
	format := opts.Format
	if format == "" {
		format = "json"
	}
	return lookupReader(r, format)
}

// limitReader fails once more than max bytes have been read rather than
// truncating its input.
type limitReader struct {
	r   io.Reader
	n   int64
	max int64
}

func (l *limitReader) Read(b []byte) (int, error) {
	n, err := l.r.Read(b)
	l.n += int64(n)
	if l.n > l.max {
		return n, fmt.Errorf("%w of %d bytes", ErrMaxSize, l.max)
	}
	return n, err
}
