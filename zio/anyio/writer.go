package anyio

import (
	"io"

	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/csvio"
)

type WriterOpts struct {
	Format string
	CSV    csvio.WriterOpts
}

func NewWriter(w io.WriteCloser, opts WriterOpts) (zio.WriteCloser, error) {
	return lookupWriter(w, opts)
}
