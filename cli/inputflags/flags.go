package inputflags

import (
	"flag"
	"fmt"
	"strings"

	"github.com/brimdata/rowbatch/cli/auto"
	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/anyio"
)

// DefaultMaxSize matches the read buffer limit of the JSON readers.
const DefaultMaxSize = 25 * 1024 * 1024

type Flags struct {
	anyio.ReaderOpts
	maxSize auto.Bytes
}

func (f *Flags) Options() anyio.ReaderOpts {
	return f.ReaderOpts
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.Format, "i", "", fmt.Sprintf("format of input data [%s] (default by file extension, else json)", strings.Join(anyio.InputFormats(), ",")))
	f.maxSize = auto.NewBytes(DefaultMaxSize)
	fs.Var(&f.maxSize, "maxsize", "maximum size of each input, as '10MB' or '4GiB', etc. (0 for no limit)")
}

// Init is called after flags have been parsed.
func (f *Flags) Init() error {
	if f.Format != "" {
		if err := anyio.CheckInput(f.Format); err != nil {
			return fmt.Errorf("-i: %w", err)
		}
	}
	if f.maxSize.Bytes < 0 {
		return fmt.Errorf("-maxsize: negative size %s", f.maxSize)
	}
	f.MaxSize = f.maxSize.Bytes
	return nil
}

// Open opens each path.  If any path fails to open, the readers already
// opened are closed and the error is returned.
func (f *Flags) Open(paths []string) ([]zio.ReadCloser, error) {
	var readers []zio.ReadCloser
	for _, path := range paths {
		r, err := anyio.Open(path, f.ReaderOpts)
		if err != nil {
			for _, r := range readers {
				r.Close()
			}
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		readers = append(readers, r)
	}
	return readers, nil
}
